package realtime

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubStreamsBroadcasts(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	waitForClients(t, hub, 1)
	hub.Broadcast(Event{Name: "campaign:updated", Payload: []byte(`{"campaignId":1,"currentAmount":35000}`)})

	lines := make(chan string, 8)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	var gotEvent, gotData bool
	timeout := time.After(2 * time.Second)
	for !(gotEvent && gotData) {
		select {
		case line := <-lines:
			if line == "event: campaign:updated" {
				gotEvent = true
			}
			if strings.HasPrefix(line, "data: ") && strings.Contains(line, `"currentAmount":35000`) {
				gotData = true
			}
		case <-timeout:
			t.Fatalf("timed out waiting for SSE frame (event=%v data=%v)", gotEvent, gotData)
		}
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	waitForClients(t, hub, 1)
	cancel()
	resp.Body.Close()
	waitForClients(t, hub, 0)
}

func TestBroadcastDropsForSlowClient(t *testing.T) {
	hub := NewHub()

	// A client that never drains: once its buffer is full, broadcasts must
	// not block.
	slow := &client{id: uuid.New(), outbound: make(chan Event, outboundBuffer)}
	hub.register(slow)
	defer hub.unregister(slow)

	done := make(chan struct{})
	go func() {
		for i := 0; i < outboundBuffer*2; i++ {
			hub.Broadcast(Event{Name: "campaign:updated", Payload: []byte(`{}`)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a slow client")
	}

	if len(slow.outbound) != outboundBuffer {
		t.Errorf("buffered = %d, want a full buffer of %d", len(slow.outbound), outboundBuffer)
	}
}
