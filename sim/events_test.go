package sim

import "testing"

func TestEventQueueDropsOldest(t *testing.T) {
	q := NewEventQueue(3)
	for i := uint64(1); i <= 5; i++ {
		q.Push(Event{Kind: ShotFired, Tick: i})
	}
	if q.Len() != 3 {
		t.Fatalf("expected 3 queued events, got %d", q.Len())
	}

	got := q.Drain()
	for i, want := range []uint64{3, 4, 5} {
		if got[i].Tick != want {
			t.Fatalf("event %d: expected tick %d, got %d", i, want, got[i].Tick)
		}
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("expected drained queue to be empty")
	}
}

func TestEventQueueUnbounded(t *testing.T) {
	q := NewEventQueue(0)
	for i := 0; i < 200; i++ {
		q.Push(Event{Kind: HitRegistered})
	}
	if q.Len() != 200 {
		t.Fatalf("expected 200 events, got %d", q.Len())
	}
}

func TestSessionEventsBounded(t *testing.T) {
	s := newTestSession(t, func(c *Config) {
		c.MaxPendingEvents = 4
		c.Player.FireCooldown = 0.01
	})
	s.OnKeyDown(Fire)
	for i := 0; i < 20; i++ {
		tick(s)
	}

	events := s.Events()
	if len(events) != 4 {
		t.Fatalf("expected queue capped at 4, got %d", len(events))
	}
	if events[3].Tick != 20 {
		t.Fatalf("expected newest event from tick 20, got %d", events[3].Tick)
	}
}
