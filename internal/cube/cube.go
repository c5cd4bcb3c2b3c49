// Package cube holds the small integer position types shared by the world
// engine and the wire protocol.
package cube

// Pos is a block position in a dimension's absolute coordinate space.
type Pos struct {
	X, Y, Z int32
}

// Add returns p shifted by dx, dy, dz.
func (p Pos) Add(dx, dy, dz int32) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Neighbours returns the six axis-adjacent positions of p, in a fixed but
// semantically irrelevant order (see spec.md §4.4).
func (p Pos) Neighbours() [6]Pos {
	return [6]Pos{
		p.Add(1, 0, 0), p.Add(-1, 0, 0),
		p.Add(0, 1, 0), p.Add(0, -1, 0),
		p.Add(0, 0, 1), p.Add(0, 0, -1),
	}
}

// ChunkX returns the chunk column coordinate containing p.X.
func (p Pos) ChunkX() int32 { return floorDiv16(p.X) }

// ChunkZ returns the chunk column coordinate containing p.Z.
func (p Pos) ChunkZ() int32 { return floorDiv16(p.Z) }

func floorDiv16(v int32) int32 {
	if v >= 0 {
		return v >> 4
	}
	return -(((-v - 1) >> 4) + 1)
}

// Range is the inclusive-exclusive vertical extent of a dimension:
// [Min, Min+Height).
type Range struct {
	Min, Height int32
}

// Sections returns the number of 16-block-tall sections spanning r.
func (r Range) Sections() int32 { return r.Height / 16 }

// SectionIndex returns which section index within a chunk y falls into,
// and the section-local y (sy) within that section. It does not validate
// that y lies within r; callers must check first.
func (r Range) SectionIndex(y int32) (section int32, sy int32) {
	rel := y - r.Min
	return rel / 16, rel % 16
}

// SectionLocalIndex packs an intra-section (x,y,z), each in [0,16), into the
// 0-4095 cell index used by Section storage: y<<8 | z<<4 | x.
func SectionLocalIndex(x, y, z int32) int {
	return int(y)<<8 | int(z)<<4 | int(x)
}

// ChunkKey packs a chunk column coordinate into the u64 key used by
// Dimension's chunk table: (x as u64) << 32 | (z as u64 & 0xFFFFFFFF).
func ChunkKey(x, z int32) uint64 {
	return uint64(uint32(x))<<32 | uint64(uint32(z))
}

// UnpackChunkKey is the inverse of ChunkKey.
func UnpackChunkKey(key uint64) (x, z int32) {
	return int32(uint32(key >> 32)), int32(uint32(key))
}

// InChunk reports whether x, z (section-column-local, i.e. within [0,16))
// and y (within [ra.Min, ra.Min+ra.Height)) are valid coordinates for a
// chunk's Get/SetBlock.
func InChunk(x, y, z int32, ra Range) bool {
	return x >= 0 && x < 16 && z >= 0 && z < 16 && y >= ra.Min && y < ra.Min+ra.Height
}
