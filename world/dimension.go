package world

import (
	"runtime"
	"sync"
	"weak"

	"github.com/blockforge/core/block"
	"github.com/blockforge/core/internal/cube"
	"github.com/blockforge/core/world/generator"
	"github.com/cespare/xxhash/v2"
)

const chunkShards = 32

type chunkShard struct {
	mu     sync.Mutex
	chunks map[ChunkKey]weak.Pointer[Chunk]
}

// DimensionType carries the static descriptor fields spec.md §3 lists for
// a dimension (min-y, height, ambient light, coordinate scale, ceiling).
type DimensionType struct {
	Identifier      string
	Range           cube.Range
	AmbientLight    float64
	CoordinateScale float64
	HasCeiling      bool
}

// Dimension is a named simulation region with a stable index within its
// World (spec.md §3).
type Dimension struct {
	index int
	typ   DimensionType
	gen   generator.Generator

	shards [chunkShards]chunkShard
}

// NewDimension constructs a Dimension. gen is run once per chunk the first
// time it is requested (spec.md §4.2).
func NewDimension(index int, typ DimensionType, gen generator.Generator) *Dimension {
	d := &Dimension{index: index, typ: typ, gen: gen}
	for i := range d.shards {
		d.shards[i].chunks = make(map[ChunkKey]weak.Pointer[Chunk])
	}
	return d
}

// Index returns the dimension's stable index within its World.
func (d *Dimension) Index() int { return d.index }

// Type returns the dimension's static descriptor.
func (d *Dimension) Type() DimensionType { return d.typ }

func (d *Dimension) shardFor(key ChunkKey) *chunkShard {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(key >> (8 * i))
	}
	return &d.shards[xxhash.Sum64(buf[:])%chunkShards]
}

// GetChunk is the only place Chunks are created (spec.md §4.2): it looks
// the chunk up by key, upgrading the weak reference if one is alive, or
// else allocates a fresh chunk, runs the terrain generator on it, and
// installs a weak reference before returning the new strong one.
func (d *Dimension) GetChunk(cx, cz int32) *Chunk {
	key := cube.ChunkKey(cx, cz)
	shard := d.shardFor(key)

	shard.mu.Lock()
	if wp, ok := shard.chunks[key]; ok {
		if c := wp.Value(); c != nil {
			shard.mu.Unlock()
			return c
		}
	}
	shard.mu.Unlock()

	c := newChunk(d, key, d.typ.Range)
	if d.gen != nil {
		d.gen.Generate(&chunkSink{c: c})
	}

	shard.mu.Lock()
	shard.chunks[key] = weak.Make(c)
	shard.mu.Unlock()

	runtime.AddCleanup(c, func(s *chunkShard) {
		s.mu.Lock()
		if wp, ok := s.chunks[key]; ok && wp.Value() == nil {
			delete(s.chunks, key)
		}
		s.mu.Unlock()
	}, shard)

	return c
}

// LoadedChunk reports whether a chunk at (cx,cz) currently has a live
// strong reference somewhere, without creating one.
func (d *Dimension) LoadedChunk(cx, cz int32) bool {
	key := cube.ChunkKey(cx, cz)
	shard := d.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	wp, ok := shard.chunks[key]
	return ok && wp.Value() != nil
}

// GetBlock resolves (x,y,z) to its owning chunk and reads the block-state
// id there, allocating the chunk if necessary (spec.md §3 S3).
func (d *Dimension) GetBlock(x, y, z int32) (state block.StateID, ok bool) {
	pos := cube.Pos{X: x, Y: y, Z: z}
	c := d.GetChunk(pos.ChunkX(), pos.ChunkZ())
	defer keepAlive(c)
	lx, lz := localCoord(x), localCoord(z)
	return c.GetBlock(lx, y, lz)
}

// SetBlock resolves (x,y,z) to its owning chunk and writes state there,
// allocating the chunk if necessary.
func (d *Dimension) SetBlock(x, y, z int32, state block.StateID) error {
	pos := cube.Pos{X: x, Y: y, Z: z}
	c := d.GetChunk(pos.ChunkX(), pos.ChunkZ())
	defer keepAlive(c)
	lx, lz := localCoord(x), localCoord(z)
	return c.SetBlock(lx, y, lz, state)
}

// localCoord reduces an absolute axis coordinate to its chunk-local [0,16)
// remainder, handling negative coordinates correctly (floor-mod, not
// truncating mod).
func localCoord(v int32) int32 {
	m := v % 16
	if m < 0 {
		m += 16
	}
	return m
}
