package bitpack

import (
	"reflect"
	"testing"
)

func TestBitsFor(t *testing.T) {
	cases := []struct {
		n    int
		bits int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {1024, 10}, {1025, 11},
	}
	for _, c := range cases {
		if got := BitsFor(c.n); got != c.bits {
			t.Errorf("BitsFor(%d) = %d, want %d", c.n, got, c.bits)
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, width := range []int{1, 2, 3, 4, 5, 8, 15} {
		entries := make([]uint32, 4096)
		max := uint32(1)<<uint(width) - 1
		for i := range entries {
			entries[i] = uint32(i) % (max + 1)
		}
		packed := Pack(entries, width)
		perLong := 64 / width
		wantLen := (len(entries) + perLong - 1) / perLong
		if len(packed) != wantLen {
			t.Fatalf("width=%d: len(packed)=%d, want %d", width, len(packed), wantLen)
		}
		got := Unpack(packed, width, len(entries))
		if !reflect.DeepEqual(got, entries) {
			t.Fatalf("width=%d: round trip mismatch", width)
		}
	}
}

func TestPackEightPerLongAt8Bits(t *testing.T) {
	entries := make([]uint32, 4096)
	packed := Pack(entries, 8)
	if len(packed) != 512 {
		t.Fatalf("8 bits per entry over 4096 entries: got %d longs, want 512", len(packed))
	}
}
