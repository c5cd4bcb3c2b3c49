// Package block implements the process-wide block/item catalog of
// spec.md §3/§9: string identifier → numeric protocol id → block /
// block-state / item handle, plus the Block capability interface used by
// the tick driver's on_update hook.
package block

import (
	"fmt"

	"github.com/blockforge/core/internal/cube"
	"github.com/blockforge/core/registry"
)

// StateID is a globally unique 32-bit block-state id (spec.md §3).
type StateID uint32

// Update describes a single pending re-notification produced by a block's
// OnUpdate hook (spec.md §3 "block update").
type Update struct {
	Pos       cube.Pos
	Dimension int
	State     StateID
	Kind      UpdateKind
}

// UpdateKind enumerates the kinds of block update spec.md §3 defines.
type UpdateKind int

const (
	NeighborChange UpdateKind = iota
	PostPlacement
	Change
)

// Block is the capability interface every registered block type
// implements (spec.md §9's "small capability interface").
type Block interface {
	// ID is the block's protocol id.
	ID() int32
	// Name is the block's string identifier, e.g. "minecraft:stone".
	Name() string
	// DefaultState is the block-state id used when no state is specified.
	DefaultState() StateID
	// States lists every block-state id the block exposes.
	States() []StateID
	// OnUpdate is invoked by the tick driver per spec.md §4.4; the default
	// implementation returns nil.
	OnUpdate(kind UpdateKind, pos cube.Pos, dimension int, state StateID) []Update
}

// baseBlock is the default Block implementation; registered block types
// embed it and override OnUpdate only when they need to.
type baseBlock struct {
	id      int32
	name    string
	states  []StateID
	dfltIdx int
}

func (b *baseBlock) ID() int32             { return b.id }
func (b *baseBlock) Name() string          { return b.name }
func (b *baseBlock) DefaultState() StateID { return b.states[b.dfltIdx] }
func (b *baseBlock) States() []StateID     { return b.states }
func (b *baseBlock) OnUpdate(UpdateKind, cube.Pos, int, StateID) []Update { return nil }

// Catalog is the read-only-after-init process-wide block/item registry.
type Catalog struct {
	byID          map[int32]Block
	byName        map[string]Block
	stateOwner    map[StateID]Block
	stateItem     map[StateID]int32 // block-state id -> item protocol id, 0 if none
	nextProtocol  int32
}

type blockStateJSON struct {
	Properties map[string]string `json:"properties"`
	Default    bool              `json:"default"`
}

type blockJSON struct {
	Identifier string           `json:"identifier"`
	Item       string           `json:"item"`
	States     []blockStateJSON `json:"states"`
}

// NewCatalog loads registry/data/blocks.json and builds the catalog
// described in spec.md §3/§9. Protocol ids and block-state ids are both
// assigned densely in file order, starting at 0.
func NewCatalog() (*Catalog, error) {
	var rows []blockJSON
	if err := registry.ReadJSON("blocks.json", &rows); err != nil {
		return nil, fmt.Errorf("block: %w", err)
	}

	c := &Catalog{
		byID:       make(map[int32]Block, len(rows)),
		byName:     make(map[string]Block, len(rows)),
		stateOwner: make(map[StateID]Block),
		stateItem:  make(map[StateID]int32),
	}

	var nextState uint32
	for i, row := range rows {
		if len(row.States) == 0 {
			return nil, fmt.Errorf("block: %s has no states", row.Identifier)
		}
		b := &baseBlock{id: int32(i), name: row.Identifier}
		dflt := -1
		for _, st := range row.States {
			id := StateID(nextState)
			nextState++
			b.states = append(b.states, id)
			c.stateOwner[id] = b
			if st.Default {
				if dflt != -1 {
					return nil, fmt.Errorf("block: %s has more than one default state", row.Identifier)
				}
				dflt = len(b.states) - 1
			}
		}
		if dflt == -1 {
			return nil, fmt.Errorf("block: %s has no default state", row.Identifier)
		}
		b.dfltIdx = dflt
		c.byID[b.id] = b
		c.byName[b.name] = b
		if row.Item != "" {
			c.stateItem[b.DefaultState()] = b.id
		}
	}
	c.nextProtocol = int32(len(rows))
	return c, nil
}

// ByID looks up a block by its protocol id.
func (c *Catalog) ByID(id int32) (Block, bool) { b, ok := c.byID[id]; return b, ok }

// ByName looks up a block by its string identifier.
func (c *Catalog) ByName(name string) (Block, bool) { b, ok := c.byName[name]; return b, ok }

// StateOwner returns the Block that owns a given block-state id.
func (c *Catalog) StateOwner(state StateID) (Block, bool) { b, ok := c.stateOwner[state]; return b, ok }

// Air returns the protocol-zero block, used by Section as the "empty" cell
// value (spec.md §3 invariants: a cell of state 0 counts as air).
func (c *Catalog) Air() Block { b, _ := c.byID[0]; return b }
