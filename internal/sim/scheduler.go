package sim

import "container/heap"

// timedEvent is a deferred state mutation. It fires at sim time at, but only
// if the agent is still in the state it was scheduled from — a stale event
// outliving a state change is a guarded no-op.
type timedEvent struct {
	at      float64
	agentID int
	expect  EnemyState
	action  func(*Enemy)
	seq     int // insertion order tiebreak for equal fire times
}

type eventHeap []*timedEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(*timedEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return ev
}

// Scheduler is a deterministic replacement for timer callbacks: a min-heap
// of (fire-time, agent, expected-state, action) tuples drained at the start
// of every manager tick. Single-threaded, like the rest of the core.
type Scheduler struct {
	events  eventHeap
	nextSeq int
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules action to run delay seconds after now, guarded on the
// agent still being in expect when it fires.
func (s *Scheduler) After(now, delay float64, agent *Enemy, expect EnemyState, action func(*Enemy)) {
	s.nextSeq++
	heap.Push(&s.events, &timedEvent{
		at:      now + delay,
		agentID: agent.ID,
		expect:  expect,
		action:  action,
		seq:     s.nextSeq,
	})
}

// Run fires every event due at or before now. lookup resolves an agent ID to
// its live agent, or nil if it has been removed — events for removed agents
// are dropped, as are events whose expected-state guard fails.
func (s *Scheduler) Run(now float64, lookup func(id int) *Enemy) {
	for len(s.events) > 0 && s.events[0].at <= now {
		ev := heap.Pop(&s.events).(*timedEvent)
		agent := lookup(ev.agentID)
		if agent == nil || agent.State != ev.expect {
			continue
		}
		ev.action(agent)
	}
}

// Pending returns the number of queued events. Used by tests.
func (s *Scheduler) Pending() int {
	return len(s.events)
}
