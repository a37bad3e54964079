// Package wsi assembles the TIFF/BigTIFF structural parser, pyramid-level
// discovery, and compression-specific tile reconstruction into the public
// reader surface for Aperio-style whole slide images, with a partial
// Leica SCN compatibility check.
package wsi

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/echoflaresat/wsireader/compression"
	"github.com/echoflaresat/wsireader/ifdcodec"
	"github.com/echoflaresat/wsireader/jpegfixup"
	"github.com/echoflaresat/wsireader/region"
	"github.com/echoflaresat/wsireader/source"
	"github.com/echoflaresat/wsireader/tifftag"
	"github.com/echoflaresat/wsireader/tiledlevel"
)

// level bundles one pyramid level's tile grid with the compression
// details needed to reconstruct a tile payload: the compression code
// and, for JPEG-in-TIFF levels, the shared (already APP14-fixed)
// JPEGTables stream.
type level struct {
	tiled       *tiledlevel.TiledLevel
	compression compression.Type
	jpegTables  []byte // nil when absent
}

// Reader is the Aperio whole slide image reader (AperioReader in the
// data model): it owns the parsed Tiff, a RandomReader handle, and the
// ordered pyramid levels discovered at open time.
type Reader struct {
	tiff   ifdcodec.Tiff
	source source.RandomReader
	levels []level

	dimensions      [2]uint64
	levelDimensions [][2]uint64
	levelTileSizes  [][2]uint64

	tileCache *lru.Cache // tileCacheKey(level, x, y) -> Tile
}

// Option configures a Reader at construction time.
type Option func(*Reader)

// WithTileCache enables an LRU cache of reconstructed tile payloads,
// keyed by (level, x, y), sized to hold at most n tiles. The cache is
// disabled by default: per spec, the core keeps no global caches, and
// callers wanting one compose it themselves — this option is the
// documented opt-in path when that composition should live inside the
// Reader instead.
func WithTileCache(n int) Option {
	return func(r *Reader) {
		if n <= 0 {
			return
		}
		c, err := lru.New(n)
		if err == nil {
			r.tileCache = c
		}
	}
}

// Open opens path as a local file and parses it as a tiled pyramidal
// TIFF/BigTIFF. The returned Reader owns the file handle.
func Open(path string, opts ...Option) (*Reader, error) {
	fs, err := source.NewFileSource(path)
	if err != nil {
		return nil, wrapIOError(err)
	}
	r, err := OpenSource(fs, opts...)
	if err != nil {
		fs.Close()
		return nil, err
	}
	return r, nil
}

// OpenSource parses rr as a tiled pyramidal TIFF/BigTIFF. rr is owned by
// the returned Reader for the purposes of read_tile/read_region, but its
// lifecycle (closing, if applicable) remains the caller's responsibility.
func OpenSource(rr source.RandomReader, opts ...Option) (*Reader, error) {
	tiff, err := ifdcodec.Walk(rr)
	if err != nil {
		return nil, wrapParseError(err)
	}

	r := &Reader{tiff: tiff, source: rr}

	for _, ifd := range tiff {
		if _, ok := ifd[tifftag.TileOffsets]; !ok {
			continue
		}
		cmpValue, ok := ifd[tifftag.Compression]
		if !ok {
			continue
		}
		cmpCode, ok := cmpValue.Uint16()
		if !ok {
			continue
		}
		tiled, err := tiledlevel.New(ifd)
		if err != nil {
			continue
		}

		var jpegTables []byte
		if jtValue, ok := ifd[tifftag.JPEGTables]; ok {
			if raw, ok := jtValue.Bytes(); ok {
				cloned := append([]byte(nil), raw...)
				jpegTables = jpegfixup.SetAdobeTransformUnknown(cloned)
			}
		}

		r.levels = append(r.levels, level{
			tiled:       tiled,
			compression: compression.Type(cmpCode),
			jpegTables:  jpegTables,
		})
		r.levelDimensions = append(r.levelDimensions, [2]uint64{tiled.Width, tiled.Height})
		r.levelTileSizes = append(r.levelTileSizes, [2]uint64{tiled.TileWidth, tiled.TileHeight})
	}

	if len(r.levels) == 0 {
		return nil, newWsiError(RoleNotAWsi, "no IFD with TileOffsets, Compression, and a usable tile grid")
	}
	r.dimensions = r.levelDimensions[0]

	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// LevelCount returns the number of pyramid levels.
func (r *Reader) LevelCount() int {
	return len(r.levels)
}

// Dimensions returns (width, height) of level 0.
func (r *Reader) Dimensions() (uint64, uint64) {
	return r.dimensions[0], r.dimensions[1]
}

// LevelDimensions returns (width, height) of the given level.
func (r *Reader) LevelDimensions(lv int) (uint64, uint64, error) {
	if lv < 0 || lv >= len(r.levelDimensions) {
		return 0, 0, newWsiError(RoleOutOfIndex, "level %d out of range [0,%d)", lv, len(r.levelDimensions))
	}
	d := r.levelDimensions[lv]
	return d[0], d[1], nil
}

// LevelTileSizes returns (tile_width, tile_height) of the given level.
func (r *Reader) LevelTileSizes(lv int) (uint64, uint64, error) {
	if lv < 0 || lv >= len(r.levelTileSizes) {
		return 0, 0, newWsiError(RoleOutOfIndex, "level %d out of range [0,%d)", lv, len(r.levelTileSizes))
	}
	s := r.levelTileSizes[lv]
	return s[0], s[1], nil
}

func tileCacheKey(lv int, x, y uint64) uint64 {
	return uint64(lv)<<48 | (x&0xFFFFFF)<<24 | (y & 0xFFFFFF)
}

// ReadTile fetches and reconstructs tile (x, y) of level lv: for
// JPEG-in-TIFF levels (compression 7 with a JPEGTables stream) this
// concatenates the shared tables with the tile's entropy-coded segment;
// for Aperio JPEG 2000 levels (33003/33005) the codestream is returned
// verbatim.
func (r *Reader) ReadTile(lv int, x, y uint64) (*Tile, error) {
	if lv < 0 || lv >= len(r.levels) {
		return nil, newWsiError(RoleOutOfIndex, "level %d out of range [0,%d)", lv, len(r.levels))
	}
	lvl := &r.levels[lv]

	if r.tileCache != nil {
		if v, ok := r.tileCache.Get(tileCacheKey(lv, x, y)); ok {
			t := v.(Tile)
			return &t, nil
		}
	}

	offset, length, ok := lvl.tiled.TileRange(x, y)
	if !ok {
		return nil, newWsiError(RoleOutOfIndex, "tile (%d,%d) out of range for level %d", x, y, lv)
	}
	buf, err := r.source.ReadRange(offset, offset+length)
	if err != nil {
		return nil, wrapIOError(err)
	}

	var tile Tile
	switch {
	case lvl.jpegTables != nil && lvl.compression == compression.JPEG:
		tables := lvl.jpegTables
		if len(tables) >= 2 {
			tables = tables[:len(tables)-2]
		}
		var payload []byte
		if len(buf) >= 2 {
			payload = buf[2:]
		}
		out := make([]byte, 0, len(tables)+len(payload))
		out = append(out, tables...)
		out = append(out, payload...)
		tile = Tile{kind: kindJPEG, data: out}
	case lvl.compression == compression.AperioJP2KYCbCr, lvl.compression == compression.AperioJP2KRGB:
		tile = Tile{kind: kindJP2K, data: buf}
	default:
		return nil, newWsiError(RoleUnknownCompression, "level %d: compression %s with jpegTables=%v", lv, lvl.compression, lvl.jpegTables != nil)
	}

	if r.tileCache != nil {
		r.tileCache.Add(tileCacheKey(lv, x, y), tile)
	}
	return &tile, nil
}

// RegionTile is one entry of a ReadRegion result: a fetched tile plus the
// crop box to take from it and the position to paste that crop at when
// the caller composites the window.
type RegionTile struct {
	Tile  *Tile
	Crop  region.Box
	Paste region.Point
}

// ReadRegion decomposes the window via region.PlanRegion and issues one
// ReadTile per plan entry, in planner order.
func (r *Reader) ReadRegion(lv int, x0, y0, x1, y1 uint64) ([]RegionTile, error) {
	if lv < 0 || lv >= len(r.levels) {
		return nil, newWsiError(RoleOutOfIndex, "level %d out of range [0,%d)", lv, len(r.levels))
	}
	lvl := &r.levels[lv]
	if x1 > lvl.tiled.Width || y1 > lvl.tiled.Height || x0 > x1 || y0 > y1 {
		return nil, newWsiError(RoleOutOfIndex, "region (%d,%d)-(%d,%d) exceeds level %d bounds %dx%d", x0, y0, x1, y1, lv, lvl.tiled.Width, lvl.tiled.Height)
	}

	plans := region.PlanRegion(lvl.tiled.TileWidth, lvl.tiled.TileHeight, x0, y0, x1, y1)
	out := make([]RegionTile, 0, len(plans))
	for _, p := range plans {
		tile, err := r.ReadTile(lv, p.TileX, p.TileY)
		if err != nil {
			return nil, err
		}
		out = append(out, RegionTile{Tile: tile, Crop: p.Crop, Paste: p.Paste})
	}
	return out, nil
}

// IsLeicaCompatible reports whether IFD[0] carries TileOffsets and an
// ImageDescription matching one of the two Leica SCN XML namespace
// literals. Full Leica decoding is not part of this core — this is a
// probe only.
func (r *Reader) IsLeicaCompatible() bool {
	if len(r.tiff) == 0 {
		return false
	}
	ifd := r.tiff[0]
	if _, ok := ifd[tifftag.TileOffsets]; !ok {
		return false
	}
	descValue, ok := ifd[tifftag.ImageDescription]
	if !ok {
		return false
	}
	desc, ok := descValue.String()
	if !ok {
		return false
	}
	desc = strings.TrimRight(desc, "\x00")
	return strings.Contains(desc, leicaXMLNS1) || strings.Contains(desc, leicaXMLNS2)
}

const (
	leicaXMLNS1 = "http://www.leica-microsystems.com/scn/2010/03/10"
	leicaXMLNS2 = "http://www.leica-microsystems.com/scn/2010/10/01"
)

func wrapParseError(err error) *WsiError {
	return &WsiError{Role: RoleIO, Detail: "structural parse failed", Err: err}
}
