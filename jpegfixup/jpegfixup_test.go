package jpegfixup

import "testing"

func TestSetAdobeTransformUnknownOverwritesExisting(t *testing.T) {
	// FF EE 00 0E "Adobe" 00 64 00 00 00 00 02 (transform=YCCK) at offset 0.
	buf := []byte{
		0xff, 0xee, 0x00, 0x0e, 0x41, 0x64, 0x6f, 0x62, 0x65, 0x00, 0x64, 0x00, 0x00, 0x00, 0x00, 0x02,
	}
	out := SetAdobeTransformUnknown(buf)
	if len(out) != 16 {
		t.Fatalf("len(out) = %d, want 16 (in-place rewrite must not change length)", len(out))
	}
	if out[15] != 0x00 {
		t.Errorf("out[15] = %#x, want 0x00 (transform=Unknown)", out[15])
	}
}

func TestSetAdobeTransformUnknownSplicesWhenAbsent(t *testing.T) {
	before := []byte{0xff, 0xd8, 0xff, 0xc4, 0x00, 0x1f, 0x01, 0x02, 0xff, 0xd9}
	dhtOfs := 2
	want := len(before) + 16

	out := SetAdobeTransformUnknown(before)
	if len(out) != want {
		t.Fatalf("len(out) = %d, want %d", len(out), want)
	}
	for i, b := range app14Unknown {
		if out[dhtOfs+i] != b {
			t.Fatalf("spliced segment byte %d = %#x, want %#x", i, out[dhtOfs+i], b)
		}
	}
	if out[dhtOfs+len(app14Unknown)] != 0xff || out[dhtOfs+len(app14Unknown)+1] != 0xc4 {
		t.Error("original DHT marker not preserved after splice point")
	}
}

func TestSetAdobeTransformUnknownLeavesUntouchedWhenNeitherPresent(t *testing.T) {
	before := []byte{0xff, 0xd8, 0x00, 0x01, 0x02, 0xff, 0xd9}
	out := SetAdobeTransformUnknown(append([]byte(nil), before...))
	if len(out) != len(before) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(before))
	}
	for i := range before {
		if out[i] != before[i] {
			t.Fatalf("byte %d changed: got %#x, want %#x", i, out[i], before[i])
		}
	}
}

func TestSetAdobeTransformUnknownIsIdempotent(t *testing.T) {
	original := []byte{
		0xff, 0xee, 0x00, 0x0e, 0x41, 0x64, 0x6f, 0x62, 0x65, 0x00, 0x64, 0x00, 0x00, 0x00, 0x00, 0x02,
	}
	once := SetAdobeTransformUnknown(append([]byte(nil), original...))
	twice := SetAdobeTransformUnknown(append([]byte(nil), once...))
	if len(once) != len(twice) {
		t.Fatalf("len mismatch: once=%d twice=%d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("byte %d differs between one and two applications: %#x vs %#x", i, once[i], twice[i])
		}
	}
}
