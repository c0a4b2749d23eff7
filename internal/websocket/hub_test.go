package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// fakeClient builds a Client with an outbound channel but no connection.
func fakeClient(hub *Hub) *Client {
	return &Client{
		hub: hub,
		out: make(chan []byte, outboundBuffer),
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := fakeClient(hub)
	c2 := fakeClient(hub)

	hub.Register(c1)
	hub.Register(c2)
	if got := hub.ClientCount(); got != 2 {
		t.Fatalf("ClientCount() = %d, want 2", got)
	}

	hub.Unregister(c1)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("ClientCount() after unregister = %d, want 1", got)
	}

	hub.Unregister(c2)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0", got)
	}
}

func TestUnregisterTwice(t *testing.T) {
	hub := NewHub(slog.Default())
	c := fakeClient(hub)

	hub.Register(c)
	hub.Unregister(c)
	hub.Unregister(c) // second call must not panic on the closed channel

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0", got)
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := fakeClient(hub)
	c2 := fakeClient(hub)
	hub.Register(c1)
	hub.Register(c2)

	hub.Broadcast(NewMessage("chore", "completed", "chore-42", map[string]any{"by": "member-1"}))

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.out:
			var got Message
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal broadcast: %v", err)
			}
			if got.Type != "chore_completed" {
				t.Errorf("type = %q, want %q", got.Type, "chore_completed")
			}
			if got.ID != "chore-42" {
				t.Errorf("id = %q, want %q", got.ID, "chore-42")
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatal("client never received the broadcast")
		}
	}
}

func TestBroadcastWithNoClients(t *testing.T) {
	hub := NewHub(slog.Default())
	hub.Broadcast(NewMessage("chore", "created", "c1", nil))
}

func TestBroadcastDropsWhenClientStalls(t *testing.T) {
	hub := NewHub(slog.Default())
	c := fakeClient(hub)
	hub.Register(c)

	for i := 0; i < outboundBuffer; i++ {
		hub.Broadcast(NewMessage("chore", "updated", fmt.Sprintf("c%d", i), nil))
	}

	// One past the buffer: must drop rather than block the broadcaster.
	done := make(chan struct{})
	go func() {
		hub.Broadcast(NewMessage("chore", "updated", "overflow", nil))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a stalled client")
	}

	received := 0
	for {
		select {
		case <-c.out:
			received++
		default:
			if received != outboundBuffer {
				t.Errorf("client buffered %d messages, want %d", received, outboundBuffer)
			}
			return
		}
	}
}

func TestNewMessageType(t *testing.T) {
	msg := NewMessage("tip", "updated", "tip-5", nil)
	if msg.Type != "tip_updated" {
		t.Errorf("type = %q, want %q", msg.Type, "tip_updated")
	}
	if msg.Entity != "tip" || msg.Action != "updated" || msg.ID != "tip-5" {
		t.Errorf("message = %+v", msg)
	}
}

func TestHubConcurrentUse(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := fakeClient(hub)
			hub.Register(c)
			hub.Broadcast(NewMessage("chore", "updated", "", nil))
			for {
				select {
				case <-c.out:
				default:
					hub.Unregister(c)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("ClientCount() after concurrent churn = %d, want 0", got)
	}
}
