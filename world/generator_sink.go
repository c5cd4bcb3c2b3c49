package world

import "github.com/blockforge/core/block"

// chunkSink adapts a *Chunk to generator.Sink so terrain generators can
// write blocks without importing package world (spec.md §4.2's
// generator contract is `gen(chunk) -> chunk`; Go expresses that as
// dependency inversion through this narrow adapter instead).
type chunkSink struct{ c *Chunk }

func (s *chunkSink) SetBlock(x, y, z int32, state uint32) {
	// The generator only ever writes coordinates within the freshly
	// allocated chunk's own bounds, so the error is not actionable here.
	_ = s.c.SetBlock(x, y, z, block.StateID(state))
}

func (s *chunkSink) Range() (minY, height int32) {
	return s.c.ra.Min, s.c.ra.Height
}
