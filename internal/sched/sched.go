// Package sched provides a virtual clock with periodic and one-shot callbacks.
//
// All callbacks run synchronously inside Advance, one at a time, so state owned by
// the caller is never mutated concurrently. The same scheduler drives the real game
// (advanced by the UI tick) and tests (advanced by hand).
package sched

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Duration
	interval time.Duration // zero for one-shot timers
	seq      uint64        // scheduling order, breaks ties between equal due times
	fn       func()
	index    int
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler is a single logical clock. It is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	queue  timerQueue
	byID   map[TimerID]*timer
	nextID TimerID
	seq    uint64
}

// New creates a scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{
		byID: make(map[TimerID]*timer),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every schedules fn to run every interval, first at Now()+interval.
// Panics on a non-positive interval.
func (s *Scheduler) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		panic("sched: non-positive interval")
	}
	return s.schedule(s.now+interval, interval, fn)
}

// After schedules fn to run once at Now()+delay.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.schedule(s.now+delay, 0, fn)
}

func (s *Scheduler) schedule(due, interval time.Duration, fn func()) TimerID {
	s.nextID++
	s.seq++
	t := &timer{
		id:       s.nextID,
		due:      due,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer. Returns false if it already fired or never existed.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

// Reset cancels every pending timer. The clock keeps its current time.
func (s *Scheduler) Reset() {
	for _, t := range s.queue {
		t.index = -1
	}
	s.queue = nil
	s.byID = make(map[TimerID]*timer)
}

// Pending returns the number of scheduled timers.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Advance moves the clock forward by d, firing every callback that falls due
// on the way in due-time order. The clock reads the callback's due time while
// it runs. Callbacks may schedule or cancel timers.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d
	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*timer)
		s.now = t.due
		if t.interval > 0 {
			s.seq++
			t.due += t.interval
			t.seq = s.seq
			heap.Push(&s.queue, t)
		} else {
			delete(s.byID, t.id)
		}
		t.fn()
	}
	s.now = target
}
