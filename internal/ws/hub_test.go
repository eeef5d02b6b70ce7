package ws

import (
	"testing"

	"go.uber.org/zap"
)

func newTestClient(h *Hub, userID uint, buffer int) *Client {
	return &Client{hub: h, send: make(chan Event, buffer), userID: userID}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub(zap.NewNop())

	var counts []int
	hub.OnCountChange(func(n int) { counts = append(counts, n) })

	c1 := newTestClient(hub, 1, 1)
	c2 := newTestClient(hub, 2, 1)
	hub.register(c1)
	hub.register(c2)
	if hub.ClientCount() != 2 {
		t.Errorf("ClientCount() = %d, want 2", hub.ClientCount())
	}

	hub.unregister(c1)
	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	want := []int{1, 2, 1}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts = %v, want %v", counts, want)
			break
		}
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := newTestClient(hub, 1, 1)
	hub.register(c)
	hub.unregister(c)

	if _, ok := <-c.send; ok {
		t.Error("send channel still open after unregister")
	}

	// Double unregister is a no-op.
	hub.unregister(c)
}

func TestHub_PublishFansOut(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c1 := newTestClient(hub, 1, 4)
	c2 := newTestClient(hub, 2, 4)
	hub.register(c1)
	hub.register(c2)

	hub.Publish(NewEvent("notification", "New Order", "Alice purchased Go in Practice"))

	for _, c := range []*Client{c1, c2} {
		select {
		case event := <-c.send:
			if event.Title != "New Order" {
				t.Errorf("event = %+v", event)
			}
		default:
			t.Errorf("client %d received nothing", c.userID)
		}
	}
}

func TestHub_PublishSkipsSlowClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	slow := newTestClient(hub, 1, 1)
	hub.register(slow)

	// Fill the buffer, then publish again: must not block.
	hub.Publish(NewEvent("notification", "first", ""))
	hub.Publish(NewEvent("notification", "second", ""))

	event := <-slow.send
	if event.Title != "first" {
		t.Errorf("event = %+v", event)
	}
	select {
	case event := <-slow.send:
		t.Errorf("unexpected second event %+v", event)
	default:
	}
}

func TestNewEvent(t *testing.T) {
	event := NewEvent("notification", "title", "message")
	if event.Type != "notification" || event.Title != "title" {
		t.Errorf("event = %+v", event)
	}
	if event.Timestamp == 0 {
		t.Error("Timestamp not set")
	}
}
