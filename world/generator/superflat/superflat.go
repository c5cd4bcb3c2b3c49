// Package superflat implements spec.md §4.2's only supplied terrain
// generator: uniform horizontal layers stacked from a configurable
// start-y, leaving everything above the provided block list as air.
package superflat

import "github.com/blockforge/core/world/generator"

// Generator fills layers [StartY, StartY+len(Blocks)), measured from the
// dimension's min-y, uniformly across every x,z column with Blocks,
// leaving the rest of the chunk at zero (air).
type Generator struct {
	Blocks []uint32
	StartY int32
}

// New returns a configured super-flat Generator.
func New(blocks []uint32, startY int32) *Generator {
	return &Generator{Blocks: blocks, StartY: startY}
}

// Generate implements generator.Generator. StartY is relative to the
// sink's min-y, not an absolute world coordinate: start_y=0 lands the
// first layer at the dimension's floor.
func (g *Generator) Generate(sink generator.Sink) {
	minY, _ := sink.Range()
	for i, state := range g.Blocks {
		y := minY + g.StartY + int32(i)
		for z := int32(0); z < 16; z++ {
			for x := int32(0); x < 16; x++ {
				sink.SetBlock(x, y, z, state)
			}
		}
	}
}
