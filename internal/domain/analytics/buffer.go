package analytics

import (
	"sync"
	"time"
)

// DefaultFlushThreshold is the buffered cell count that triggers a flush.
const DefaultFlushThreshold = 100

// DefaultFlushInterval is the timer-driven flush period.
const DefaultFlushInterval = 300 * time.Second

// Batch is one drained snapshot of the buffer, ready for an upsert.
type Batch map[Key]int64

// Buffer accumulates payload counts per aggregation cell in memory.
// Safe for concurrent use; a drain swaps the map so emitters never block
// on the flush write.
type Buffer struct {
	mu        sync.Mutex
	cells     Batch
	threshold int
}

// NewBuffer creates a buffer that reports ShouldFlush at the threshold.
// A non-positive threshold falls back to the default.
func NewBuffer(threshold int) *Buffer {
	if threshold <= 0 {
		threshold = DefaultFlushThreshold
	}
	return &Buffer{
		cells:     make(Batch),
		threshold: threshold,
	}
}

// Add folds one payload into its cell and reports whether the buffer has
// reached the flush threshold.
func (b *Buffer) Add(p Payload) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cells[KeyFromPayload(p)] += p.Count
	return len(b.cells) >= b.threshold
}

// Len returns the number of distinct cells currently buffered.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.cells)
}

// Drain removes and returns everything buffered so far. Returns nil when
// the buffer is empty.
func (b *Buffer) Drain() Batch {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.cells) == 0 {
		return nil
	}
	drained := b.cells
	b.cells = make(Batch)
	return drained
}

// Merge folds a batch back into the buffer, combining with anything
// accumulated since. Used to return a drained batch whose flush write
// failed.
func (b *Buffer) Merge(batch Batch) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, count := range batch {
		b.cells[key] += count
	}
}
