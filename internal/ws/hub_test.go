package ws

import (
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if !hub.clients[client] {
		t.Fatal("client not registered")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.clients[client] {
		t.Fatal("client still registered after unregister")
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)
	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"invoice_number":"INV-000123"}`)
	hub.Broadcast(Event{Type: "invoice.created", Payload: testPayload})

	for i, client := range []*Client{client1, client2} {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("failed to unmarshal message: %v", err)
			}
			if received.Type != "invoice.created" {
				t.Errorf("expected type 'invoice.created', got '%s'", received.Type)
			}
			if string(received.Payload) != string(testPayload) {
				t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client %d did not receive message", i+1)
		}
	}
}

func TestNotifyMarshalsPayload(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.Notify("invoice.payment_status_changed", map[string]string{
		"invoice_number": "INV-000007",
		"payment_status": "DONE",
	})

	select {
	case msg := <-client.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "invoice.payment_status_changed" {
			t.Errorf("expected type 'invoice.payment_status_changed', got '%s'", received.Type)
		}
		var payload map[string]string
		if err := json.Unmarshal(received.Payload, &payload); err != nil {
			t.Fatalf("failed to unmarshal payload: %v", err)
		}
		if payload["payment_status"] != "DONE" {
			t.Errorf("payment_status: got %q, want 'DONE'", payload["payment_status"])
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive notification")
	}
}

func TestSlowClientIsEvicted(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Client with no buffer: the first broadcast fills it, the second
	// finds it full and evicts the client.
	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(Event{Type: "invoice.created"})
	hub.Broadcast(Event{Type: "invoice.created"})
	time.Sleep(20 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.clients[slow] {
		t.Fatal("slow client should have been evicted")
	}
}
