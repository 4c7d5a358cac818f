package service

import "github.com/guttosm/fulfillment-service/internal/domain/model"

// DeferredQueue holds order remainders in arrival order until a restock.
// It is not safe for concurrent use; FulfillmentService serialises access.
type DeferredQueue struct {
	entries []model.DeferredEntry
}

// NewDeferredQueue returns an empty queue.
func NewDeferredQueue() *DeferredQueue {
	return &DeferredQueue{}
}

// Push appends an entry to the tail.
func (q *DeferredQueue) Push(entry model.DeferredEntry) {
	q.entries = append(q.entries, entry)
}

// Pop removes and returns the head entry.
func (q *DeferredQueue) Pop() (model.DeferredEntry, bool) {
	if len(q.entries) == 0 {
		return model.DeferredEntry{}, false
	}
	entry := q.entries[0]
	q.entries[0] = model.DeferredEntry{}
	q.entries = q.entries[1:]
	return entry, true
}

// Len returns the number of queued entries.
func (q *DeferredQueue) Len() int {
	return len(q.entries)
}

// Drain retries every entry queued at the time of the call exactly once, in
// arrival order. retry returns the remainder still owed; entries with a
// positive remainder go back to the tail and are not retried again in this pass.
func (q *DeferredQueue) Drain(retry func(model.DeferredEntry) model.Request) {
	n := len(q.entries)
	for i := 0; i < n; i++ {
		entry, ok := q.Pop()
		if !ok {
			return
		}
		remaining := retry(entry)
		if !remaining.IsSatisfied() {
			q.Push(model.DeferredEntry{OrderID: entry.OrderID, Remaining: remaining})
		}
	}
}

// Snapshot returns a deep copy of the queue contents, head first.
func (q *DeferredQueue) Snapshot() []model.DeferredEntry {
	out := make([]model.DeferredEntry, len(q.entries))
	for i, entry := range q.entries {
		out[i] = model.DeferredEntry{OrderID: entry.OrderID, Remaining: entry.Remaining.Clone()}
	}
	return out
}
