// Package world implements the spec.md §3/§4 spatial hierarchy (Section,
// Chunk, Dimension, World) and the §4.4 tick driver.
package world

import (
	"log/slog"

	"github.com/blockforge/core/block"
)

// World owns an ordered list of Dimensions, the entity table and the
// double-buffered block-update queue (spec.md §3).
type World struct {
	log        *slog.Logger
	catalog    *block.Catalog
	dimensions []*Dimension
	Entities   *EntityTable
	Updates    *BlockUpdateQueue
	leases     *leaseSet

	// GenerationCap bounds the number of fixpoint propagation rounds a
	// single tick will run before the tick driver gives up and logs a
	// warning (spec.md §9 open question, resolved in DESIGN.md).
	GenerationCap int
}

// Config configures a World's ambient dependencies.
type Config struct {
	Log     *slog.Logger
	Catalog *block.Catalog
}

// New constructs a World with no dimensions; call AddDimension to populate
// it before starting the tick loop.
func New(conf Config) *World {
	log := conf.Log
	if log == nil {
		log = slog.Default()
	}
	return &World{
		log:           log,
		catalog:       conf.Catalog,
		Entities:      NewEntityTable(),
		Updates:       NewBlockUpdateQueue(),
		leases:        newLeaseSet(),
		GenerationCap: 16,
	}
}

// AddDimension appends dim to the World and returns its assigned index.
func (w *World) AddDimension(dim *Dimension) int {
	dim.index = len(w.dimensions)
	w.dimensions = append(w.dimensions, dim)
	return dim.index
}

// Dimension returns the dimension at index, or nil if out of range.
func (w *World) Dimension(index int) *Dimension {
	if index < 0 || index >= len(w.dimensions) {
		return nil
	}
	return w.dimensions[index]
}

// Dimensions returns every registered dimension, in index order.
func (w *World) Dimensions() []*Dimension {
	return append([]*Dimension(nil), w.dimensions...)
}
