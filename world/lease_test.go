package world

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/blockforge/core/internal/cube"
)

func TestLeaseSetMutualExclusion(t *testing.T) {
	l := newLeaseSet()
	key := leaseKey(0, cube.Pos{X: 1, Y: 2, Z: 3})

	var inside atomic.Int32
	var sawConcurrent atomic.Bool
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Acquire(key)
			if inside.Add(1) > 1 {
				sawConcurrent.Store(true)
			}
			inside.Add(-1)
			l.Release(key)
		}()
	}
	wg.Wait()

	if sawConcurrent.Load() {
		t.Fatal("two goroutines held the same lease key concurrently")
	}
}

func TestLeaseKeyDistinguishesCells(t *testing.T) {
	a := leaseKey(0, cube.Pos{X: 0, Y: 0, Z: 0})
	b := leaseKey(0, cube.Pos{X: 0, Y: 0, Z: 1})
	c := leaseKey(1, cube.Pos{X: 0, Y: 0, Z: 0})
	if a == b || a == c || b == c {
		t.Fatalf("expected distinct keys, got a=%d b=%d c=%d", a, b, c)
	}
}
