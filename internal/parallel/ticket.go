package parallel

import "sync"

// ticketRecord is one link in a queue-wide doubly linked chain, guarded by
// the owning TicketQueue's mutex. prev == nil means the record is at the
// head of the chain and therefore immediately callable. The queue's tail
// sentinel is itself an (unexported) ticketRecord permanently linked as
// the .next of the most recently appended real record, so that unlinking
// a record automatically keeps the sentinel's .prev pointing at the new
// tail — the same trick TicketQueue.hpp's Shared::tail plays.
type ticketRecord struct {
	mu   *sync.Mutex
	cond *sync.Cond

	prev, next *ticketRecord // guarded by mu

	called bool     // guarded by mu
	done   bool      // guarded by mu
	onCall []func() // guarded by mu
}

// Ticket is a position in a FIFO-ordered queue of asynchronous work. A
// ticket is "called" when every earlier ticket taken from the same queue
// has had Done called on it, and "done" once the work it represents
// finishes. Tickets preserve submission order across goroutines without
// serializing unrelated work: only tickets from the same queue form a
// chain.
type Ticket struct {
	rec *ticketRecord
}

// Wait blocks the calling goroutine until the ticket becomes callable.
func (t Ticket) Wait() {
	t.rec.mu.Lock()
	for !t.rec.called {
		t.rec.cond.Wait()
	}
	t.rec.mu.Unlock()
}

// OnCall registers f to run when the ticket becomes callable. If the
// ticket is already callable, f runs synchronously before OnCall returns.
// Multiple registered callbacks all run, in registration order.
func (t Ticket) OnCall(f func()) {
	t.rec.mu.Lock()
	if t.rec.called {
		t.rec.mu.Unlock()
		f()
		return
	}
	t.rec.onCall = append(t.rec.onCall, f)
	t.rec.mu.Unlock()
}

// Done releases the ticket, making the next ticket in the chain callable.
// Done is idempotent: calling it more than once has no additional effect.
func (t Ticket) Done() {
	rec := t.rec
	rec.mu.Lock()
	if rec.done {
		rec.mu.Unlock()
		return
	}
	rec.done = true
	wasHead := rec.prev == nil
	next := rec.next
	unlink(rec)
	rec.mu.Unlock()

	if wasHead && next != nil {
		next.fire()
	}
}

// unlink removes rec from its chain, relinking its neighbors (which may
// include the queue's tail sentinel). Caller holds rec.mu.
func unlink(rec *ticketRecord) {
	if rec.prev != nil {
		rec.prev.next = rec.next
	}
	if rec.next != nil {
		rec.next.prev = rec.prev
	}
	rec.prev = nil
	rec.next = nil
}

// fire marks rec callable, wakes any waiters, and runs its registered
// callbacks. No-op if rec is the queue's tail sentinel or already called.
func (rec *ticketRecord) fire() {
	rec.mu.Lock()
	if rec.called {
		rec.mu.Unlock()
		return
	}
	rec.called = true
	callbacks := rec.onCall
	rec.onCall = nil
	rec.mu.Unlock()

	rec.cond.Broadcast()
	for _, f := range callbacks {
		f()
	}
}

// TicketQueue hands out tickets in FIFO order. Tickets taken from the
// same queue are chained: a ticket becomes callable exactly when every
// ticket taken before it has been marked Done.
type TicketQueue struct {
	mu   sync.Mutex
	cond *sync.Cond
	tail ticketRecord // sentinel; never handed out as a Ticket, never "called"
}

// NewTicketQueue creates an empty ticket queue.
func NewTicketQueue() *TicketQueue {
	q := &TicketQueue{}
	q.cond = sync.NewCond(&q.mu)
	q.tail.mu = &q.mu
	q.tail.cond = q.cond
	q.tail.called = true // the sentinel is never waited on
	return q
}

// Take returns a single ticket at the tail of the queue.
func (q *TicketQueue) Take() Ticket {
	var out Ticket
	q.TakeN(1, func(t Ticket) { out = t })
	return out
}

// TakeN returns n consecutive tickets, invoking f with each as it is
// allocated, in order. n must be > 0.
func (q *TicketQueue) TakeN(n int, f func(Ticket)) {
	if n <= 0 {
		return
	}

	recs := make([]*ticketRecord, n)
	for i := range recs {
		recs[i] = &ticketRecord{mu: &q.mu, cond: q.cond}
	}
	for i := 0; i < n-1; i++ {
		recs[i].next = recs[i+1]
		recs[i+1].prev = recs[i]
	}
	recs[n-1].next = &q.tail

	q.mu.Lock()
	recs[0].prev = q.tail.prev
	q.tail.prev = recs[n-1]
	headReady := recs[0].prev == nil
	if !headReady {
		recs[0].prev.next = recs[0]
	}
	q.mu.Unlock()

	for _, rec := range recs {
		f(Ticket{rec: rec})
	}
	if headReady {
		recs[0].fire()
	}
}
