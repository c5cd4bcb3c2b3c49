package cube

import "testing"

func TestChunkKeyRoundTrip(t *testing.T) {
	cases := []struct{ x, z int32 }{
		{0, 0}, {1, -1}, {-1, 1}, {2147483647, 0}, {0, -2147483648}, {-100, 100},
	}
	for _, c := range cases {
		key := ChunkKey(c.x, c.z)
		gotX, gotZ := UnpackChunkKey(key)
		if gotX != c.x || gotZ != c.z {
			t.Errorf("ChunkKey(%d,%d) round trip = (%d,%d)", c.x, c.z, gotX, gotZ)
		}
	}
}

func TestSectionLocalIndexRange(t *testing.T) {
	seen := make(map[int]bool)
	for y := int32(0); y < 16; y++ {
		for z := int32(0); z < 16; z++ {
			for x := int32(0); x < 16; x++ {
				idx := SectionLocalIndex(x, y, z)
				if idx < 0 || idx > 4095 {
					t.Fatalf("index out of range: %d", idx)
				}
				seen[idx] = true
			}
		}
	}
	if len(seen) != 4096 {
		t.Fatalf("expected 4096 distinct indices, got %d", len(seen))
	}
}

func TestFloorDiv16Chunk(t *testing.T) {
	p := Pos{X: -1, Y: 0, Z: -17}
	if p.ChunkX() != -1 {
		t.Errorf("ChunkX() = %d, want -1", p.ChunkX())
	}
	if p.ChunkZ() != -2 {
		t.Errorf("ChunkZ() = %d, want -2", p.ChunkZ())
	}
}

func TestSectionIndex(t *testing.T) {
	ra := Range{Min: -64, Height: 384}
	sec, sy := ra.SectionIndex(-64)
	if sec != 0 || sy != 0 {
		t.Fatalf("SectionIndex(-64) = (%d,%d), want (0,0)", sec, sy)
	}
	sec, sy = ra.SectionIndex(-1)
	if sec != 3 || sy != 15 {
		t.Fatalf("SectionIndex(-1) = (%d,%d), want (3,15)", sec, sy)
	}
}
