package sim

import "github.com/milk9111/invaders/common"

// EventKind identifies a cue the session raises for the audio side.
type EventKind int

const (
	ShotFired EventKind = iota + 1
	HitRegistered
)

func (k EventKind) String() string {
	switch k {
	case ShotFired:
		return "shot_fired"
	case HitRegistered:
		return "hit_registered"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification raised during a tick.
type Event struct {
	Kind     EventKind
	Tick     uint64
	Position common.Point
}

// EventQueue is a bounded FIFO queue. When full, the oldest event is
// dropped so an absent consumer cannot grow it without limit.
type EventQueue struct {
	items []Event
	limit int
}

func NewEventQueue(limit int) *EventQueue {
	return &EventQueue{limit: limit}
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	if q.limit > 0 && len(q.items) >= q.limit {
		q.items = append(q.items[:0], q.items[1:]...)
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
