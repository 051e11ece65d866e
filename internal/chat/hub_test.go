package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// recordingSender collects everything sent to it.
type recordingSender struct {
	mu   sync.Mutex
	got  [][]byte
	fail bool
}

func (s *recordingSender) Send(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("send failed")
	}
	s.got = append(s.got, data)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

func TestHubJoinLeave(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	a := &recordingSender{}
	b := &recordingSender{}

	hub.Join("room:study", a)
	hub.Join("room:study", b)
	if got := hub.Subscribers("room:study"); got != 2 {
		t.Errorf("expected 2 subscribers, got %d", got)
	}

	hub.Leave("room:study", a)
	if got := hub.Subscribers("room:study"); got != 1 {
		t.Errorf("expected 1 subscriber, got %d", got)
	}

	hub.Leave("room:study", b)
	if got := hub.Subscribers("room:study"); got != 0 {
		t.Errorf("expected empty room, got %d", got)
	}

	// Leaving a room that never existed is a no-op.
	hub.Leave("room:nowhere", a)
}

func TestHubBroadcastReachesAllSubscribers(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	a := &recordingSender{}
	b := &recordingSender{}
	other := &recordingSender{}

	hub.Join("room:study", a)
	hub.Join("room:study", b)
	hub.Join("session:private", other)

	hub.Broadcast(context.Background(), "room:study", []byte("hello"))

	if a.count() != 1 || b.count() != 1 {
		t.Errorf("expected both room members to receive, got %d and %d", a.count(), b.count())
	}
	if other.count() != 0 {
		t.Errorf("expected isolated session to receive nothing, got %d", other.count())
	}
}

func TestHubBroadcastSurvivesFailingSender(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	bad := &recordingSender{fail: true}
	good := &recordingSender{}

	hub.Join("room:study", bad)
	hub.Join("room:study", good)

	hub.Broadcast(context.Background(), "room:study", []byte("hello"))

	if good.count() != 1 {
		t.Errorf("expected healthy subscriber to receive despite failing peer, got %d", good.count())
	}
}

func TestHubBroadcastEmptyRoom(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	hub.Broadcast(context.Background(), "room:empty", []byte("hello"))
}
