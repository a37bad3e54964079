// Package tiledlevel derives a WSI pyramid level view (dimensions, tile
// grid, tile offset/byte-count tables) from a decoded IFD.
package tiledlevel

import (
	"fmt"

	"github.com/echoflaresat/wsireader/ifdcodec"
	"github.com/echoflaresat/wsireader/tifftag"
)

// TiledLevel is the derived view over an IFD that carries TileOffsets.
// Offsets and ByteCounts are parallel vectors, one entry per tile,
// row-major with x fastest (see TileID).
type TiledLevel struct {
	Width, Height         uint64
	TileWidth, TileHeight uint64
	Offsets               []uint64
	ByteCounts            []uint64
}

// toU64 widens a Byte/Short/Long/Long8/Undefined scalar to uint64, the
// type-coercing extractor named to_u64 in the pyramid-level design.
func toU64(ifd ifdcodec.IFD, tag tifftag.Tag) (uint64, error) {
	v, ok := ifd[tag]
	if !ok {
		return 0, fmt.Errorf("tiledlevel: missing tag %s", tag)
	}
	u, ok := v.Uint64()
	if !ok {
		return 0, fmt.Errorf("tiledlevel: tag %s is not an unsigned scalar (type %s)", tag, v.Type)
	}
	return u, nil
}

// toU64Vec widens a LongVec or Long8Vec tag value to []uint64.
func toU64Vec(ifd ifdcodec.IFD, tag tifftag.Tag) ([]uint64, error) {
	v, ok := ifd[tag]
	if !ok {
		return nil, fmt.Errorf("tiledlevel: missing tag %s", tag)
	}
	u, ok := v.Uint64Vec()
	if !ok {
		return nil, fmt.Errorf("tiledlevel: tag %s is not an unsigned vector (type %s)", tag, v.Type)
	}
	return u, nil
}

// NumTilesAcross returns ceil(width/tile_width), the number of tile
// columns — also the stride used by TileID.
func numTilesAcross(width, tileWidth uint64) uint64 {
	return (width + tileWidth - 1) / tileWidth
}

// New builds a TiledLevel from ifd, which must carry ImageWidth,
// ImageLength, TileWidth, TileLength, TileOffsets and TileByteCounts.
// Height is read from ImageLength (tag 257), not ImageWidth — the
// original property reader's copy-paste bug is not reproduced here.
func New(ifd ifdcodec.IFD) (*TiledLevel, error) {
	width, err := toU64(ifd, tifftag.ImageWidth)
	if err != nil {
		return nil, err
	}
	height, err := toU64(ifd, tifftag.ImageLength)
	if err != nil {
		return nil, err
	}
	tileWidth, err := toU64(ifd, tifftag.TileWidth)
	if err != nil {
		return nil, err
	}
	tileHeight, err := toU64(ifd, tifftag.TileLength)
	if err != nil {
		return nil, err
	}
	offsets, err := toU64Vec(ifd, tifftag.TileOffsets)
	if err != nil {
		return nil, err
	}
	byteCounts, err := toU64Vec(ifd, tifftag.TileByteCounts)
	if err != nil {
		return nil, err
	}
	if len(offsets) != len(byteCounts) {
		return nil, fmt.Errorf("tiledlevel: TileOffsets has %d entries, TileByteCounts has %d", len(offsets), len(byteCounts))
	}
	want := int(numTilesAcross(width, tileWidth) * numTilesAcross(height, tileHeight))
	if len(offsets) != want {
		return nil, fmt.Errorf("tiledlevel: expected %d tiles for %dx%d at tile size %dx%d, got %d", want, width, height, tileWidth, tileHeight, len(offsets))
	}
	return &TiledLevel{
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Offsets:    offsets,
		ByteCounts: byteCounts,
	}, nil
}

// NumTilesAcross returns the number of tile columns in this level.
func (l *TiledLevel) NumTilesAcross() uint64 {
	return numTilesAcross(l.Width, l.TileWidth)
}

// NumTilesDown returns the number of tile rows in this level.
func (l *TiledLevel) NumTilesDown() uint64 {
	return numTilesAcross(l.Height, l.TileHeight)
}

// TileID linearizes a tile grid index (x, y) to an index into Offsets
// and ByteCounts: row-major, x fastest.
func (l *TiledLevel) TileID(x, y uint64) uint64 {
	return l.NumTilesAcross()*y + x
}

// TileRange returns the (offset, length) byte range of tile (x, y),
// failing with ok=false when the index is outside the grid.
func (l *TiledLevel) TileRange(x, y uint64) (offset, length uint64, ok bool) {
	if x >= l.NumTilesAcross() || y >= l.NumTilesDown() {
		return 0, 0, false
	}
	id := l.TileID(x, y)
	if id >= uint64(len(l.Offsets)) {
		return 0, 0, false
	}
	return l.Offsets[id], l.ByteCounts[id], true
}
