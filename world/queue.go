package world

import (
	"sync"
	"sync/atomic"

	"github.com/blockforge/core/block"
	"github.com/blockforge/core/internal/cube"
)

// BlockUpdateKind mirrors block.UpdateKind for the queue's public API.
type BlockUpdateKind = block.UpdateKind

const (
	NeighborChange = block.NeighborChange
	PostPlacement  = block.PostPlacement
	Change         = block.Change
)

// BlockUpdate is the spec.md §3 "block update" record.
type BlockUpdate struct {
	Pos       cube.Pos
	Dimension int
	State     block.StateID
	Kind      BlockUpdateKind
}

// updateQueue is one half of the World's double-buffered block-update
// queue (spec.md §3/§9): a plain mutex-guarded slice, sufficient because
// ticks are per-world serial (§9 "Double-buffered queue" design note).
type updateQueue struct {
	mu    sync.Mutex
	items []BlockUpdate
}

func (q *updateQueue) push(u BlockUpdate) {
	q.mu.Lock()
	q.items = append(q.items, u)
	q.mu.Unlock()
}

func (q *updateQueue) pushAll(us []BlockUpdate) {
	if len(us) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, us...)
	q.mu.Unlock()
}

func (q *updateQueue) drain() []BlockUpdate {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// BlockUpdateQueue is the World's pair (Q0, Q1) with an atomic
// "producer side" flag (spec.md §3/§9). Appends always land on the
// current producer queue; the tick driver flips the flag at tick start
// and drains what was, until that flip, the producer queue.
type BlockUpdateQueue struct {
	q        [2]updateQueue
	producer atomic.Int32
}

// NewBlockUpdateQueue returns an empty queue with Q0 as the initial
// producer side.
func NewBlockUpdateQueue() *BlockUpdateQueue { return &BlockUpdateQueue{} }

// Push appends u onto the current producer-side queue. Safe to call
// concurrently with Flip/Drain from any number of goroutines.
func (q *BlockUpdateQueue) Push(u BlockUpdate) {
	q.q[q.producer.Load()].push(u)
}

// PushAll appends us onto the current producer-side queue.
func (q *BlockUpdateQueue) PushAll(us []BlockUpdate) {
	q.q[q.producer.Load()].pushAll(us)
}

// Flip swaps which side is the producer side and returns the former
// producer side's contents to be drained as the tick's internal queue
// (spec.md §4.4 step 2).
func (q *BlockUpdateQueue) Flip() []BlockUpdate {
	old := q.producer.Load()
	q.producer.Store(1 - old)
	return q.q[old].drain()
}
