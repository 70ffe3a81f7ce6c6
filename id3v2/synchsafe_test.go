package id3v2

import "testing"

func TestSynchSafe28RoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 127, 128, 1<<21 - 1, 1<<28 - 1}
	for _, v := range cases {
		enc := encodeSynchSafe28(v)
		for _, b := range enc {
			if b&0x80 != 0 {
				t.Fatalf("encodeSynchSafe28(%d): high bit set in %08b", v, b)
			}
		}
		if got := decodeSynchSafe28(enc[:]); got != v {
			t.Errorf("decodeSynchSafe28(encodeSynchSafe28(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestSynchSafe35RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 1<<28 - 1, 1<<35 - 1}
	for _, v := range cases {
		enc := encodeSynchSafe35(v)
		for _, b := range enc {
			if b&0x80 != 0 {
				t.Fatalf("encodeSynchSafe35(%d): high bit set in %08b", v, b)
			}
		}
		if got := decodeSynchSafe35(enc[:]); got != v {
			t.Errorf("decodeSynchSafe35(encodeSynchSafe35(%d)) = %d, want %d", v, got, v)
		}
	}
}

func TestBigEndianCodecsRoundTrip(t *testing.T) {
	if v := decodeBE32(encodeBE32(0x01020304)[:]); v != 0x01020304 {
		t.Errorf("BE32 round trip: got %#x", v)
	}
	if v := decodeBE24(encodeBE24(0x010203)[:]); v != 0x010203 {
		t.Errorf("BE24 round trip: got %#x", v)
	}
	if v := decodeBE16(encodeBE16(0x0102)[:]); v != 0x0102 {
		t.Errorf("BE16 round trip: got %#x", v)
	}
}

func TestSynchSafe28RejectsNothingButMasksHighBit(t *testing.T) {
	// decodeSynchSafe28 is permissive: it masks off a stray high bit
	// rather than treating it as an error. This test documents that
	// behavior so a future change to strict validation is deliberate.
	b := [4]byte{0xFF, 0x7F, 0x7F, 0x7F}
	got := decodeSynchSafe28(b[:])
	want := uint32(0x7F)<<21 | uint32(0x7F)<<14 | uint32(0x7F)<<7 | uint32(0x7F)
	if got != want {
		t.Errorf("decodeSynchSafe28 with stray high bit = %d, want %d", got, want)
	}
}
