package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"VitalSim/internal/domain/models"
)

type staticSource struct {
	snap *models.EngineSnapshot
}

func (s *staticSource) Latest() *models.EngineSnapshot { return s.snap }

func dialHub(t *testing.T, h *Hub) (*websocket.Conn, func()) {
	t.Helper()
	srv := httptest.NewServer(h)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Count() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count stuck at %d, want %d", h.Count(), want)
}

func TestConnectReceivesImmediateSnapshot(t *testing.T) {
	src := &staticSource{snap: &models.EngineSnapshot{Tick: 7}}
	h := New(src, time.Hour) // broadcast loop not running; only the greeting fires

	conn, done := dialHub(t, h)
	defer done()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read greeting: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Event != "snapshot" {
		t.Fatalf("event = %q, want snapshot", msg.Event)
	}
	data := msg.Data.(map[string]interface{})
	if data["tick"].(float64) != 7 {
		t.Fatalf("tick = %v, want 7", data["tick"])
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	src := &staticSource{snap: &models.EngineSnapshot{Tick: 1}}
	h := New(src, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	conn, done := dialHub(t, h)
	defer done()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for i := 0; i < 3; i++ {
		if _, _, err := conn.ReadMessage(); err != nil {
			t.Fatalf("read broadcast %d: %v", i, err)
		}
	}
}

func TestDisconnectUnregistersClient(t *testing.T) {
	src := &staticSource{snap: &models.EngineSnapshot{}}
	h := New(src, time.Hour)

	conn, done := dialHub(t, h)
	waitForCount(t, h, 1)

	conn.Close()
	waitForCount(t, h, 0)
	done()
}

func TestBroadcastRacingUnregisterDoesNotPanic(t *testing.T) {
	src := &staticSource{snap: &models.EngineSnapshot{Tick: 3}}
	h := New(src, time.Hour)

	clients := make([]*client, 0, 5000)
	for i := 0; i < 5000; i++ {
		c := &client{send: make(chan []byte, 1), done: make(chan struct{})}
		h.register(c)
		clients = append(clients, c)
	}

	// Tear clients down while the hub goroutine is mid-broadcast. The send
	// channels stay open, so the non-blocking sends must never panic.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			h.broadcast()
		}
	}()
	go func() {
		defer wg.Done()
		for _, c := range clients {
			h.unregister(c)
		}
	}()
	wg.Wait()

	if h.Count() != 0 {
		t.Fatalf("%d clients still registered after teardown", h.Count())
	}
}

func TestUnregisterTwiceIsNoOp(t *testing.T) {
	h := New(&staticSource{snap: &models.EngineSnapshot{}}, time.Hour)
	c := &client{send: make(chan []byte, 1), done: make(chan struct{})}
	h.register(c)
	h.unregister(c)
	h.unregister(c) // second close of done would panic if not guarded
	if h.Count() != 0 {
		t.Fatalf("count = %d, want 0", h.Count())
	}
}

func TestRunCancelClosesClients(t *testing.T) {
	src := &staticSource{snap: &models.EngineSnapshot{}}
	h := New(src, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	conn, done := dialHub(t, h)
	defer done()
	waitForCount(t, h, 1)

	cancel()
	waitForCount(t, h, 0)

	// The server sends a close frame; reads must fail shortly after.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
