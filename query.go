package swr

import "sync/atomic"

// QueryKind names the kind of query a draw can have attached: occlusion
// results summed across clusters, or timestamps captured at stage
// boundaries.
type QueryKind uint8

const (
	QueryOcclusion QueryKind = iota
	QueryTimestamp
)

// Query is attached to every draw submitted while it is active
// (Renderer.AddQuery/RemoveQuery), and resolved when the
// draw retires.
type Query struct {
	Kind QueryKind

	// result holds the resolved value: a summed occlusion sample count,
	// or a timestamp in the renderer's monotonic task-event clock.
	result atomic.Uint64

	resolved atomic.Bool
}

// NewQuery creates an unresolved query of the given kind.
func NewQuery(kind QueryKind) *Query {
	return &Query{Kind: kind}
}

// resolve stores the query's result and marks it resolved. Called once,
// by the draw's retirement step.
func (q *Query) resolve(value uint64) {
	q.result.Store(value)
	q.resolved.Store(true)
}

// Resolved reports whether the query's owning draw has retired.
func (q *Query) Resolved() bool {
	return q.resolved.Load()
}

// Result returns the query's resolved value and whether it is ready.
func (q *Query) Result() (uint64, bool) {
	if !q.resolved.Load() {
		return 0, false
	}
	return q.result.Load(), true
}

// queryList is the renderer-owned set of currently active queries,
// guarded by the renderer's mutex; adds/removes must not race with draw
// submission on the same thread.
type queryList struct {
	active []*Query
}

func (l *queryList) add(q *Query) {
	l.active = append(l.active, q)
}

func (l *queryList) remove(q *Query) {
	for i, existing := range l.active {
		if existing == q {
			l.active = append(l.active[:i], l.active[i+1:]...)
			return
		}
	}
}

// snapshot returns the queries active at the moment a draw is submitted;
// these are the ones the draw will resolve on retirement.
func (l *queryList) snapshot() []*Query {
	out := make([]*Query, len(l.active))
	copy(out, l.active)
	return out
}
