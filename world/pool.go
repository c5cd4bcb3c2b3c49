package world

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// sharedPool is the process-wide bounded-parallelism pool of SPEC_FULL.md
// §5a: one semaphore sized to GOMAXPROCS, shared by the tick driver's
// per-generation fan-out and by chunk serialization's per-section palette
// packing, so the two never oversubscribe the machine between them. The
// light masks of a chunk are computed on the serializing goroutine, not on
// this pool.
var sharedPool = semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))

// acquireWorker blocks until a slot in the shared pool is free. ctx is
// almost always context.Background() here: tick/serialize work is not
// itself cancellable, only bounded in how much of it runs at once.
func acquireWorker(ctx context.Context) {
	_ = sharedPool.Acquire(ctx, 1)
}

func releaseWorker() {
	sharedPool.Release(1)
}
