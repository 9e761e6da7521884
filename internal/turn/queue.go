// Package turn implements the tick-based scheduler (C10/C11): a min-heap of
// (dueTick, seq) entries ordered so ties resolve by insertion order, plus the
// action-cost formula that decides how far into the future an action's
// follow-up turn lands.
//
// Grounded on the teacher's infra/scheduler retry queue: a mutex-guarded
// heap wrapper exposing Push/Pop/Len and a stats snapshot. The teacher backs
// its heap with an internal "dsa" priority queue package that was not present
// in the retrieved source, so this implementation goes directly to the
// stdlib container/heap the dsa package itself would have wrapped.
package turn

import (
	"container/heap"
	"sync"

	"github.com/deepwarren/deepwarren/internal/domain"
)

// entry is one scheduled turn.
type entry struct {
	entityID domain.EntityID
	dueTick  int64
	seq      uint64
	index    int // heap.Interface bookkeeping
}

// innerHeap implements heap.Interface ordered by (dueTick ASC, seq ASC).
type innerHeap []*entry

func (h innerHeap) Len() int { return len(h) }
func (h innerHeap) Less(i, j int) bool {
	if h[i].dueTick != h[j].dueTick {
		return h[i].dueTick < h[j].dueTick
	}
	return h[i].seq < h[j].seq
}
func (h innerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *innerHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Queue is the turn scheduler: at most one outstanding entry per entity (P4).
type Queue struct {
	mu      sync.Mutex
	h       innerHeap
	byID    map[domain.EntityID]*entry
	nextSeq uint64
}

// NewQueue returns an empty scheduler.
func NewQueue() *Queue {
	q := &Queue{byID: make(map[domain.EntityID]*entry)}
	heap.Init(&q.h)
	return q
}

// Enqueue schedules entityID for dueTick. If an entry already exists for
// entityID, it is replaced with the earlier of the two ticks.
func (q *Queue) Enqueue(entityID domain.EntityID, dueTick int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if existing, ok := q.byID[entityID]; ok {
		if dueTick < existing.dueTick {
			existing.dueTick = dueTick
			heap.Fix(&q.h, existing.index)
		}
		return
	}

	e := &entry{entityID: entityID, dueTick: dueTick, seq: q.nextSeq}
	q.nextSeq++
	q.byID[entityID] = e
	heap.Push(&q.h, e)
}

// Remove cancels entityID's outstanding entry, if any. This is the
// cancellation primitive (e.g. combat de-escalation clearing an NPC's turn).
func (q *Queue) Remove(entityID domain.EntityID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.byID[entityID]
	if !ok {
		return
	}
	heap.Remove(&q.h, e.index)
	delete(q.byID, entityID)
}

// Contains reports whether entityID has an outstanding entry.
func (q *Queue) Contains(entityID domain.EntityID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.byID[entityID]
	return ok
}

// PollDueBefore pops, in (dueTick, seq) order, every entry with
// dueTick <= now and returns their entity ids.
func (q *Queue) PollDueBefore(now int64) []domain.EntityID {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []domain.EntityID
	for len(q.h) > 0 && q.h[0].dueTick <= now {
		e := heap.Pop(&q.h).(*entry)
		delete(q.byID, e.entityID)
		due = append(due, e.entityID)
	}
	return due
}

// Len returns the number of outstanding entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.h)
}
