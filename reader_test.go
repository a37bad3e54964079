package wsi

import (
	"encoding/binary"
	"testing"

	"github.com/echoflaresat/wsireader/source"
)

// entrySpec describes one IFD entry to be laid out by buildClassicTiff:
// tag/type/count plus either an inline payload (<=4 bytes) or an
// out-of-line payload placed after the IFD body.
type entrySpec struct {
	tag     uint16
	typ     uint16
	count   uint32
	inline  []byte
	payload []byte
}

func le16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// buildClassicTiff assembles a single-IFD little-endian Classic TIFF
// from entries, laying out out-of-line payloads after the IFD body in
// entry order and appending extra (already length-correct) trailing
// blocks, returning the full buffer plus the absolute offset at which
// each trailing block landed.
func buildClassicTiff(entries []entrySpec, trailing [][]byte) (buf []byte, trailingOffsets []int) {
	const ifdHeaderLen = 2
	const entryLen = 12
	const nextPtrLen = 4

	ifdStart := 8
	bodyStart := ifdStart + ifdHeaderLen
	entriesLen := len(entries) * entryLen
	cursor := bodyStart + entriesLen + nextPtrLen

	offsets := make([]int, len(entries))
	for i, e := range entries {
		if e.payload != nil {
			offsets[i] = cursor
			cursor += len(e.payload)
		}
	}
	trailingOffsets = make([]int, len(trailing))
	for i, b := range trailing {
		trailingOffsets[i] = cursor
		cursor += len(b)
	}

	buf = make([]byte, cursor)
	copy(buf[0:2], "II")
	copy(buf[2:4], le16(42))
	copy(buf[4:8], le32(uint32(ifdStart)))
	binary.LittleEndian.PutUint16(buf[ifdStart:ifdStart+2], uint16(len(entries)))

	pos := bodyStart
	for i, e := range entries {
		binary.LittleEndian.PutUint16(buf[pos:pos+2], e.tag)
		binary.LittleEndian.PutUint16(buf[pos+2:pos+4], e.typ)
		binary.LittleEndian.PutUint32(buf[pos+4:pos+8], e.count)
		if e.payload != nil {
			binary.LittleEndian.PutUint32(buf[pos+8:pos+12], uint32(offsets[i]))
		} else {
			copy(buf[pos+8:pos+12], e.inline)
		}
		pos += entryLen
	}
	binary.LittleEndian.PutUint32(buf[pos:pos+4], 0) // no next IFD
	pos += nextPtrLen

	for i, e := range entries {
		if e.payload != nil {
			copy(buf[offsets[i]:], e.payload)
		}
	}
	for i, b := range trailing {
		copy(buf[trailingOffsets[i]:], b)
	}
	return buf, trailingOffsets
}

// scalarShort/scalarLong build an inline entrySpec for a SHORT/LONG.
func scalarShort(tag uint16, v uint16) entrySpec {
	return entrySpec{tag: tag, typ: 3, count: 1, inline: le16(v)}
}
func scalarLong(tag uint16, v uint32) entrySpec {
	return entrySpec{tag: tag, typ: 4, count: 1, inline: le32(v)}
}

// vecLong builds an out-of-line LONG-vector entrySpec.
func vecLong(tag uint16, vs []uint32) entrySpec {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
	return entrySpec{tag: tag, typ: 4, count: uint32(len(vs)), payload: b}
}

// vecUndefined builds an out-of-line UNDEFINED-vector entrySpec (used
// for JPEGTables).
func vecUndefined(tag uint16, data []byte) entrySpec {
	return entrySpec{tag: tag, typ: 7, count: uint32(len(data)), payload: append([]byte(nil), data...)}
}

// vecASCII builds an out-of-line ASCII entrySpec.
func vecASCII(tag uint16, s string) entrySpec {
	return entrySpec{tag: tag, typ: 2, count: uint32(len(s)), payload: []byte(s)}
}

const (
	tagImageWidth       = 256
	tagImageLength      = 257
	tagCompression      = 259
	tagImageDescription = 270
	tagTileWidth        = 322
	tagTileLength       = 323
	tagTileOffsets      = 324
	tagTileByteCounts   = 325
	tagJPEGTables       = 347
)

// buildJP2KSlide assembles a one-level 32x16 slide tiled 16x16 (2 tiles,
// tile ids 0 and 1), compression 33005 (Aperio JPEG2000 RGB), with two
// distinct tile payloads.
func buildJP2KSlide(t *testing.T, tile0, tile1 []byte) []byte {
	t.Helper()
	entries := []entrySpec{
		scalarLong(tagImageWidth, 32),
		scalarLong(tagImageLength, 16),
		scalarShort(tagCompression, 33005),
		scalarShort(tagTileWidth, 16),
		scalarShort(tagTileLength, 16),
		vecLong(tagTileOffsets, []uint32{0, 0}), // patched below
		vecLong(tagTileByteCounts, []uint32{uint32(len(tile0)), uint32(len(tile1))}),
	}
	buf, trailOfs := buildClassicTiff(entries, [][]byte{tile0, tile1})

	// Patch TileOffsets' out-of-line payload (index 5) with the real
	// trailing-block offsets, now that buildClassicTiff has placed them.
	offsetsPayload := make([]byte, 8)
	binary.LittleEndian.PutUint32(offsetsPayload[0:4], uint32(trailOfs[0]))
	binary.LittleEndian.PutUint32(offsetsPayload[4:8], uint32(trailOfs[1]))

	entries[5].payload = offsetsPayload
	buf, _ = buildClassicTiff(entries, [][]byte{tile0, tile1})
	return buf
}

func TestOpenSourceJP2KSlide(t *testing.T) {
	tile0 := []byte{0x4a, 0x50, 0x32, 0x4b, 0x01, 0x02, 0x03}
	tile1 := []byte{0x4a, 0x50, 0x32, 0x4b, 0x04, 0x05}
	buf := buildJP2KSlide(t, tile0, tile1)

	r, err := OpenSource(source.NewMemorySource(buf))
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if r.LevelCount() != 1 {
		t.Fatalf("LevelCount = %d, want 1", r.LevelCount())
	}
	w, h := r.Dimensions()
	if w != 32 || h != 16 {
		t.Fatalf("Dimensions = %dx%d, want 32x16", w, h)
	}

	tile, err := r.ReadTile(0, 0, 0)
	if err != nil {
		t.Fatalf("ReadTile(0,0): %v", err)
	}
	if tile.MIMEType() != "image/jp2" {
		t.Errorf("MIMEType = %q, want image/jp2", tile.MIMEType())
	}
	if string(tile.Bytes()) != string(tile0) {
		t.Errorf("tile(0,0) bytes = %x, want %x", tile.Bytes(), tile0)
	}

	tile, err = r.ReadTile(0, 1, 0)
	if err != nil {
		t.Fatalf("ReadTile(1,0): %v", err)
	}
	if string(tile.Bytes()) != string(tile1) {
		t.Errorf("tile(1,0) bytes = %x, want %x", tile.Bytes(), tile1)
	}

	if _, err := r.ReadTile(0, 2, 0); err == nil {
		t.Error("expected OutOfIndex error for tile (2,0)")
	}
}

// buildJPEGSlide assembles a one-level 32x16 slide tiled 16x16 (2 tiles,
// so TileOffsets/TileByteCounts are genuine out-of-line vectors, not an
// inline-sized single-element LONG), compression 7 (JPEG-in-TIFF) with
// a shared JPEGTables stream. Only tile (0,0) carries a real payload;
// tile (1,0) is an unused filler entry.
func buildJPEGSlide(t *testing.T, jpegTables, tileEntropy []byte) []byte {
	t.Helper()
	filler := []byte{0xff, 0xd8, 0x00, 0x00}
	entries := []entrySpec{
		scalarLong(tagImageWidth, 32),
		scalarLong(tagImageLength, 16),
		scalarShort(tagCompression, 7),
		scalarShort(tagTileWidth, 16),
		scalarShort(tagTileLength, 16),
		vecLong(tagTileOffsets, []uint32{0, 0}),
		vecLong(tagTileByteCounts, []uint32{uint32(len(tileEntropy)), uint32(len(filler))}),
		vecUndefined(tagJPEGTables, jpegTables),
	}
	buf, trailOfs := buildClassicTiff(entries, [][]byte{tileEntropy, filler})
	offsetsPayload := make([]byte, 8)
	binary.LittleEndian.PutUint32(offsetsPayload[0:4], uint32(trailOfs[0]))
	binary.LittleEndian.PutUint32(offsetsPayload[4:8], uint32(trailOfs[1]))
	entries[5].payload = offsetsPayload
	buf, _ = buildClassicTiff(entries, [][]byte{tileEntropy, filler})
	return buf
}

func TestOpenSourceJPEGInTiffSlide(t *testing.T) {
	// Tables: FF D8 ... FF D9 (SOI ... EOI); tile entropy: FF D8 <data>.
	jpegTables := []byte{0xff, 0xd8, 0xaa, 0xbb, 0xcc, 0xff, 0xd9}
	tileEntropy := []byte{0xff, 0xd8, 0x11, 0x22, 0x33}
	buf := buildJPEGSlide(t, jpegTables, tileEntropy)

	r, err := OpenSource(source.NewMemorySource(buf))
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	tile, err := r.ReadTile(0, 0, 0)
	if err != nil {
		t.Fatalf("ReadTile: %v", err)
	}
	if tile.MIMEType() != "image/jpeg" {
		t.Errorf("MIMEType = %q, want image/jpeg", tile.MIMEType())
	}

	want := append(append([]byte{}, jpegTables[:len(jpegTables)-2]...), tileEntropy[2:]...)
	if string(tile.Bytes()) != string(want) {
		t.Errorf("reconstructed JPEG = %x, want %x", tile.Bytes(), want)
	}
	wantLen := len(jpegTables) - 2 + len(tileEntropy) - 2
	if len(tile.Bytes()) != wantLen {
		t.Errorf("len(tile) = %d, want %d", len(tile.Bytes()), wantLen)
	}
}

func TestOpenSourceRejectsNonTiledTiff(t *testing.T) {
	entries := []entrySpec{
		scalarLong(tagImageWidth, 16),
		scalarLong(tagImageLength, 16),
	}
	buf, _ := buildClassicTiff(entries, nil)

	if _, err := OpenSource(source.NewMemorySource(buf)); err == nil {
		t.Error("expected NotAWsi error for a TIFF with no TileOffsets IFD")
	}
}

// buildLeicaProbeSlide assembles a one-level 32x16 slide tiled 16x16 (2
// tiles, keeping TileOffsets/TileByteCounts genuinely out-of-line) with
// the given ImageDescription, for exercising IsLeicaCompatible.
func buildLeicaProbeSlide(t *testing.T, desc string) []byte {
	t.Helper()
	tile0 := []byte{1, 2, 3, 4}
	tile1 := []byte{5, 6, 7, 8}
	entries := []entrySpec{
		scalarLong(tagImageWidth, 32),
		scalarLong(tagImageLength, 16),
		scalarShort(tagCompression, 33005),
		scalarShort(tagTileWidth, 16),
		scalarShort(tagTileLength, 16),
		vecLong(tagTileOffsets, []uint32{0, 0}),
		vecLong(tagTileByteCounts, []uint32{4, 4}),
		vecASCII(tagImageDescription, desc),
	}
	buf, trailOfs := buildClassicTiff(entries, [][]byte{tile0, tile1})
	offsetsPayload := make([]byte, 8)
	binary.LittleEndian.PutUint32(offsetsPayload[0:4], uint32(trailOfs[0]))
	binary.LittleEndian.PutUint32(offsetsPayload[4:8], uint32(trailOfs[1]))
	entries[5].payload = offsetsPayload
	buf, _ = buildClassicTiff(entries, [][]byte{tile0, tile1})
	return buf
}

func TestIsLeicaCompatible(t *testing.T) {
	desc := "<scn xmlns=\"http://www.leica-microsystems.com/scn/2010/10/01\"></scn>\x00"
	buf := buildLeicaProbeSlide(t, desc)

	r, err := OpenSource(source.NewMemorySource(buf))
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if !r.IsLeicaCompatible() {
		t.Error("expected IsLeicaCompatible() = true")
	}
}

func TestIsLeicaCompatibleFalseWithoutMatch(t *testing.T) {
	buf := buildLeicaProbeSlide(t, "not leica xml")

	r, err := OpenSource(source.NewMemorySource(buf))
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if r.IsLeicaCompatible() {
		t.Error("expected IsLeicaCompatible() = false")
	}
}
