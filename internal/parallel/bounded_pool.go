package parallel

import "sync"

// BoundedPool is a fixed-capacity blocking object pool: Borrow blocks while
// the pool is exhausted, Return makes an item available to the next
// blocked (or future) borrower. Unlike recording.Pool, which appends
// values and hands back their index, BoundedPool hands out mutable, reusable buffers
// (DrawCall/BatchData scratch storage) under a hard concurrency cap —
// grounded on Yarn::Pool<T>, which bounds how many in-flight draws the
// renderer allows before a caller stalls.
type BoundedPool[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond

	items []*T // backing storage, fixed size == capacity
	free  []*T // currently available items, a stack (LIFO reuse favors cache warmth)

	reset func(*T)
}

// NewBoundedPool creates a pool of the given capacity. newItem is called
// once per slot up front to allocate backing storage; reset (optional) is
// called on an item when it is returned, before it becomes available to
// the next borrower.
func NewBoundedPool[T any](capacity int, newItem func() *T, reset func(*T)) *BoundedPool[T] {
	if capacity < 1 {
		capacity = 1
	}
	p := &BoundedPool[T]{
		items: make([]*T, capacity),
		free:  make([]*T, capacity),
		reset: reset,
	}
	p.cond = sync.NewCond(&p.mu)
	for i := range p.items {
		item := newItem()
		p.items[i] = item
		p.free[i] = item
	}
	return p
}

// Borrow blocks until an item is available, then removes it from the pool.
// The caller must Return it to make it available again.
func (p *BoundedPool[T]) Borrow() *T {
	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.free) == 0 {
		p.cond.Wait()
	}
	n := len(p.free) - 1
	item := p.free[n]
	p.free = p.free[:n]
	return item
}

// TryBorrow removes an available item without blocking. It reports false
// if the pool is currently exhausted.
func (p *BoundedPool[T]) TryBorrow() (*T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		return nil, false
	}
	n := len(p.free) - 1
	item := p.free[n]
	p.free = p.free[:n]
	return item, true
}

// Return makes item available to the next borrower, running reset (if
// configured) first. item must have come from this pool via Borrow or
// TryBorrow.
func (p *BoundedPool[T]) Return(item *T) {
	if p.reset != nil {
		p.reset(item)
	}
	p.mu.Lock()
	p.free = append(p.free, item)
	p.mu.Unlock()
	p.cond.Signal()
}

// Capacity returns the total number of items the pool was created with.
func (p *BoundedPool[T]) Capacity() int {
	return len(p.items)
}

// Available returns the number of items currently free to borrow. Racy
// under concurrent use; intended for diagnostics/metrics, not control flow.
func (p *BoundedPool[T]) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
