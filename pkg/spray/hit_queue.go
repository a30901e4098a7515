package spray

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/df07/go-spray-simulator/pkg/core"
)

// Hit is a wall crossing recorded during integration. The particle index
// gives hits a canonical order independent of worker scheduling.
type Hit struct {
	Index    int       // Particle index within the frame's batch
	Position core.Vec3 // Crossing position
}

// HitQueue collects wall hits from parallel integration workers. Slot
// reservation is a single atomic add; the read lock is held only while
// writing the slot so concurrent growth cannot lose writes.
type HitQueue struct {
	hits   []Hit        // Pre-allocated buffer, doubled on demand
	length int64        // Atomic counter for current length
	mu     sync.RWMutex // Write lock held only while growing or draining
}

// NewHitQueue creates a hit queue with a pre-allocated buffer
func NewHitQueue(capacity int) *HitQueue {
	if capacity <= 0 {
		capacity = 1
	}
	return &HitQueue{
		hits:   make([]Hit, capacity),
		length: 0,
	}
}

// Add appends a hit. Reserving the slot is lock-free; pre-size the queue to
// the expected hit count and the write path never blocks on growth.
func (q *HitQueue) Add(hit Hit) {
	index := int(atomic.AddInt64(&q.length, 1) - 1)

	q.mu.RLock()
	if index < len(q.hits) {
		q.hits[index] = hit
		q.mu.RUnlock()
		return
	}
	q.mu.RUnlock()

	// Slow path: grow until the reserved slot fits. Other reservations may
	// land beyond one doubling, so keep doubling.
	q.mu.Lock()
	for index >= len(q.hits) {
		newHits := make([]Hit, len(q.hits)*2)
		copy(newHits, q.hits)
		q.hits = newHits
	}
	q.hits[index] = hit
	q.mu.Unlock()
}

// Drain returns all pending hit positions ordered by particle index and
// resets the queue. The canonical order keeps the deposited grid bitwise
// identical no matter how ranges were scheduled across workers.
func (q *HitQueue) Drain() []core.Vec3 {
	// Need to lock to ensure a consistent view of length and slice
	q.mu.Lock()
	defer q.mu.Unlock()

	currentLength := int(atomic.LoadInt64(&q.length))
	pending := make([]Hit, currentLength)
	copy(pending, q.hits[:currentLength])
	atomic.StoreInt64(&q.length, 0)

	sort.Slice(pending, func(i, j int) bool { return pending[i].Index < pending[j].Index })

	positions := make([]core.Vec3, len(pending))
	for i, hit := range pending {
		positions[i] = hit.Position
	}
	return positions
}

// Count returns the current number of pending hits
func (q *HitQueue) Count() int {
	return int(atomic.LoadInt64(&q.length))
}
