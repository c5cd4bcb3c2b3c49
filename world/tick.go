package world

import (
	"context"
	"sync"
	"time"

	"github.com/blockforge/core/block"
	"github.com/blockforge/core/internal/cube"
	"golang.org/x/sync/errgroup"
)

// TickInterval is the server's fixed tick cadence (spec.md §4.4).
const TickInterval = 50 * time.Millisecond

// Hook is a per-tick precondition check, e.g. "TPS not degraded enough to
// skip simulation this tick". A Hook returning false causes the tick to be
// skipped entirely; the queued updates are left for the next tick.
type Hook func() bool

// Ticker drives a World's fixpoint block-update propagation on a fixed
// cadence, grounded directly on server/world/tick.go's ticker.tickLoop and
// ticker.tick: a time.Ticker plus a select against a closing channel.
type Ticker struct {
	w      *World
	ticker *time.Ticker
	closed chan struct{}
	wg     sync.WaitGroup

	mu    sync.Mutex
	hooks []Hook
}

// NewTicker returns a Ticker for w, not yet started.
func NewTicker(w *World) *Ticker {
	return &Ticker{w: w, closed: make(chan struct{})}
}

// AddHook registers a per-tick precondition, checked before a tick's
// propagation runs.
func (t *Ticker) AddHook(h Hook) {
	t.mu.Lock()
	t.hooks = append(t.hooks, h)
	t.mu.Unlock()
}

// Run starts the tick loop and blocks until Close is called.
func (t *Ticker) Run() {
	t.ticker = time.NewTicker(TickInterval)
	defer t.ticker.Stop()
	for {
		select {
		case <-t.closed:
			return
		case <-t.ticker.C:
			t.tick()
		}
	}
}

// Close stops the tick loop. Safe to call once.
func (t *Ticker) Close() {
	close(t.closed)
}

// RunTickLoop starts w's fixpoint propagation on the fixed §4.4 cadence and
// blocks until closed is closed. It is the entry point's convenience
// wrapper around Ticker for the common case of no per-tick hooks.
func RunTickLoop(w *World, closed <-chan struct{}) {
	t := NewTicker(w)
	go func() {
		<-closed
		t.Close()
	}()
	t.Run()
}

func (t *Ticker) tick() {
	t.mu.Lock()
	hooks := append([]Hook(nil), t.hooks...)
	t.mu.Unlock()
	for _, h := range hooks {
		if !h() {
			return
		}
	}
	t.w.runGeneration(t.w.Updates.Flip())
}

// runGeneration implements spec.md §4.4's fixpoint propagation: the
// generation drained from the queue is processed in bounded parallel
// fan-out, any updates it produces become the next generation, and the
// loop repeats until a generation produces nothing or the safety cap is
// hit (spec.md §9, DESIGN.md).
func (w *World) runGeneration(gen []BlockUpdate) {
	for round := 0; len(gen) > 0; round++ {
		if round >= w.GenerationCap {
			w.log.Warn("block update propagation hit generation cap, dropping remainder",
				"cap", w.GenerationCap, "pending", len(gen))
			return
		}
		gen = w.processGeneration(gen)
	}
}

// processGeneration runs every update in gen concurrently, bounded by the
// shared worker pool, and collects the updates they produce into the next
// generation.
func (w *World) processGeneration(gen []BlockUpdate) []BlockUpdate {
	var (
		mu   sync.Mutex
		next []BlockUpdate
	)
	eg, ctx := errgroup.WithContext(context.Background())
	for _, u := range gen {
		u := u
		eg.Go(func() error {
			acquireWorker(ctx)
			defer releaseWorker()
			produced := w.applyUpdate(u)
			if len(produced) > 0 {
				mu.Lock()
				next = append(next, produced...)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()
	return next
}

// applyUpdate performs the work for a single BlockUpdate and returns the
// follow-on updates it produces, per spec.md §4.4's per-kind semantics.
func (w *World) applyUpdate(u BlockUpdate) []BlockUpdate {
	dim := w.Dimension(u.Dimension)
	if dim == nil {
		return nil
	}
	switch u.Kind {
	case NeighborChange, PostPlacement:
		return w.notifyNeighbours(dim, u)
	case Change:
		return w.applyChange(dim, u)
	default:
		return nil
	}
}

// notifyNeighbours leases, reads and hooks each of the six neighbours of
// u.Pos, appending whatever their OnUpdate hooks produce.
func (w *World) notifyNeighbours(dim *Dimension, u BlockUpdate) []BlockUpdate {
	var out []BlockUpdate
	for _, n := range u.Pos.Neighbours() {
		key := leaseKey(u.Dimension, n)
		w.leases.Acquire(key)
		state, ok := dim.GetBlock(n.X, n.Y, n.Z)
		if ok {
			out = append(out, w.hook(u.Dimension, n, u.Kind, state)...)
		}
		w.leases.Release(key)
	}
	return out
}

// applyChange leases the target cell, writes the new state, hooks it and
// synthesizes the PostPlacement follow-up spec.md §4.4 requires after any
// write.
func (w *World) applyChange(dim *Dimension, u BlockUpdate) []BlockUpdate {
	key := leaseKey(u.Dimension, u.Pos)
	w.leases.Acquire(key)
	defer w.leases.Release(key)

	if err := dim.SetBlock(u.Pos.X, u.Pos.Y, u.Pos.Z, u.State); err != nil {
		w.log.Warn("dropping block update", "pos", u.Pos, "dimension", u.Dimension, "err", err)
		return nil
	}
	out := w.hook(u.Dimension, u.Pos, Change, u.State)
	out = append(out, BlockUpdate{Pos: u.Pos, Dimension: u.Dimension, State: u.State, Kind: PostPlacement})
	return out
}

// hook resolves the Block owning state and invokes its OnUpdate, translating
// the block-level Update records into world-level BlockUpdates.
func (w *World) hook(dimIdx int, pos cube.Pos, kind BlockUpdateKind, state block.StateID) []BlockUpdate {
	if w.catalog == nil {
		return nil
	}
	b, ok := w.catalog.StateOwner(state)
	if !ok {
		return nil
	}
	produced := b.OnUpdate(kind, pos, dimIdx, state)
	if len(produced) == 0 {
		return nil
	}
	out := make([]BlockUpdate, len(produced))
	for i, p := range produced {
		out[i] = BlockUpdate{Pos: p.Pos, Dimension: p.Dimension, State: p.State, Kind: p.Kind}
	}
	return out
}
