package world

import (
	"errors"
	"runtime"
	"sync"

	"github.com/blockforge/core/block"
	"github.com/blockforge/core/internal/cube"
)

// ErrCoordOutOfRange is the spec.md §7 CoordOutOfRange error: returned by
// SetBlock, never aborts the caller.
var ErrCoordOutOfRange = errors.New("world: coordinate out of range")

// ChunkKey identifies a chunk column within a Dimension (spec.md §3).
type ChunkKey = uint64

// ChunkEvent is broadcast to a chunk's subscribers on any mutation
// (spec.md §4.2).
type ChunkEvent struct {
	X, Y, Z int32
	State   block.StateID
}

// Chunk is a vertical stack of Sections spanning a Dimension's full height
// (spec.md §3/§4.2). Instances are only ever constructed by
// Dimension.GetChunk; holding a *Chunk keeps it alive, and dropping every
// strong reference is the mechanism for "unloading" it — see
// Dimension.GetChunk in dimension.go.
type Chunk struct {
	dim *Dimension
	key ChunkKey
	ra  cube.Range

	sections []*Section

	heightMu      sync.Mutex
	motionBlocking [256]uint16
	worldSurface   [256]uint16

	cacheMu sync.Mutex
	cache   []byte

	subMu       sync.Mutex
	subscribers []chan<- ChunkEvent
}

func newChunk(dim *Dimension, key ChunkKey, ra cube.Range) *Chunk {
	c := &Chunk{dim: dim, key: key, ra: ra}
	c.sections = make([]*Section, ra.Sections())
	for i := range c.sections {
		c.sections[i] = NewSection()
	}
	return c
}

// Key returns the chunk's column key.
func (c *Chunk) Key() ChunkKey { return c.key }

// GetBlock returns the block-state id at the chunk-local x/z, absolute y.
// It returns false if the coordinate is out of range (spec.md §4.2).
func (c *Chunk) GetBlock(x, y, z int32) (block.StateID, bool) {
	if !cube.InChunk(x, y, z, c.ra) {
		return 0, false
	}
	secIdx, sy := c.ra.SectionIndex(y)
	return c.sections[secIdx].GetState(cube.SectionLocalIndex(x, sy, z)), true
}

// SetBlock writes state at the chunk-local x/z, absolute y, invalidating
// the serialization cache and notifying subscribers. Returns
// ErrCoordOutOfRange if x/z are outside [0,16) or y is outside the
// dimension's vertical range (spec.md §4.2).
func (c *Chunk) SetBlock(x, y, z int32, state block.StateID) error {
	if !cube.InChunk(x, y, z, c.ra) {
		return ErrCoordOutOfRange
	}
	secIdx, sy := c.ra.SectionIndex(y)
	c.sections[secIdx].SetState(cube.SectionLocalIndex(x, sy, z), state)
	c.invalidateCache()
	c.notify(ChunkEvent{X: x, Y: y, Z: z, State: state})
	return nil
}

func (c *Chunk) invalidateCache() {
	c.cacheMu.Lock()
	c.cache = nil
	c.cacheMu.Unlock()
}

// cachedSerialization returns the memoized serialized form, if any mutator
// has not touched the chunk since it was computed (spec.md §3 invariant).
func (c *Chunk) cachedSerialization() ([]byte, bool) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if c.cache == nil {
		return nil, false
	}
	return c.cache, true
}

func (c *Chunk) storeSerialization(b []byte) {
	c.cacheMu.Lock()
	c.cache = b
	c.cacheMu.Unlock()
}

// Subscribe registers ch to receive ChunkEvents for blocks changed in this
// chunk. Sends are non-blocking: a full subscriber channel drops the event
// rather than stalling the mutator holding no lock during the send.
func (c *Chunk) Subscribe(ch chan<- ChunkEvent) {
	c.subMu.Lock()
	c.subscribers = append(c.subscribers, ch)
	c.subMu.Unlock()
}

// Unsubscribe removes ch from the subscriber list.
func (c *Chunk) Unsubscribe(ch chan<- ChunkEvent) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for i, s := range c.subscribers {
		if s == ch {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			return
		}
	}
}

func (c *Chunk) notify(ev ChunkEvent) {
	c.subMu.Lock()
	subs := append([]chan<- ChunkEvent(nil), c.subscribers...)
	c.subMu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SetHeight writes the height-map cell at (x,z) for the named map.
func (c *Chunk) SetHeight(motionBlocking bool, x, z int32, h uint16) {
	c.heightMu.Lock()
	defer c.heightMu.Unlock()
	idx := z*16 + x
	if motionBlocking {
		c.motionBlocking[idx] = h
	} else {
		c.worldSurface[idx] = h
	}
}

// Heights returns a copy of both height maps.
func (c *Chunk) Heights() (motionBlocking, worldSurface [256]uint16) {
	c.heightMu.Lock()
	defer c.heightMu.Unlock()
	return c.motionBlocking, c.worldSurface
}

// keepAlive prevents the garbage collector from reclaiming c before its
// caller is done using it; Dimension.GetChunk in dimension.go holds only a
// weak pointer to c and drops its table entry once c is collected.
func keepAlive(c *Chunk) { runtime.KeepAlive(c) }
