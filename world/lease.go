package world

import (
	"runtime"
	"sync"

	"github.com/blockforge/core/internal/cube"
	"github.com/brentp/intintmap"
	"github.com/segmentio/fasthash/fnv1a"
)

// leaseSet is the transient in-use set of spec.md §4.4/§9: acquire by
// insert-if-absent, spin-yield on contention, release by remove. A
// genuine hash collision between two distinct cells only causes extra
// spinning, never incorrect concurrent access, since acquire never
// reports success for a key someone else still holds.
type leaseSet struct {
	mu sync.Mutex
	m  *intintmap.Map
}

func newLeaseSet() *leaseSet {
	return &leaseSet{m: intintmap.New(1024, 0.75)}
}

// leaseKey packs a (dimension, x, y, z) cell into the 64-bit hash used as
// the lease set's key.
func leaseKey(dim int, pos cube.Pos) int64 {
	var buf [20]byte
	put32(buf[0:4], int32(dim))
	put32(buf[4:8], pos.X)
	put32(buf[8:12], pos.Y)
	put32(buf[12:16], pos.Z)
	return int64(fnv1a.HashBytes64(buf[:16]))
}

func put32(b []byte, v int32) {
	u := uint32(v)
	b[0], b[1], b[2], b[3] = byte(u>>24), byte(u>>16), byte(u>>8), byte(u)
}

// Acquire blocks until it wins the lease for key, yielding the scheduler
// between attempts instead of busy-spinning tightly.
func (l *leaseSet) Acquire(key int64) {
	for {
		l.mu.Lock()
		if _, ok := l.m.Get(key); !ok {
			l.m.Put(key, 1)
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()
		runtime.Gosched()
	}
}

// Release frees the lease held for key.
func (l *leaseSet) Release(key int64) {
	l.mu.Lock()
	l.m.Del(key)
	l.mu.Unlock()
}
