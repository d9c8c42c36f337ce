package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/airnav/internal/nav"
)

func dialBridge(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/bridge"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s error = %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, b *Bridge, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", b.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBridge_CommandsReachClient(t *testing.T) {
	bridge := NewBridge()
	ts := httptest.NewServer(New(Config{Bridge: bridge}))
	defer ts.Close()

	conn := dialBridge(t, ts)
	waitForClients(t, bridge, 1)

	if err := bridge.Navigate(nav.RouteTasks); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if err := bridge.ScrollBy("content-scroll", 240, true); err != nil {
		t.Fatalf("ScrollBy() error = %v", err)
	}
	if err := bridge.ClickAt(195, 422); err != nil {
		t.Fatalf("ClickAt() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var cmd struct {
		Type        string `json:"type"`
		Route       string `json:"route"`
		ContainerID string `json:"containerId"`
		Delta       int    `json:"delta"`
		Smooth      bool   `json:"smooth"`
		X           int    `json:"x"`
		Y           int    `json:"y"`
	}

	if err := conn.ReadJSON(&cmd); err != nil {
		t.Fatalf("read navigate: %v", err)
	}
	if cmd.Type != "navigate" || cmd.Route != "/tasks" {
		t.Errorf("first command = %+v, want navigate /tasks", cmd)
	}

	if err := conn.ReadJSON(&cmd); err != nil {
		t.Fatalf("read scroll: %v", err)
	}
	if cmd.Type != "scroll" || cmd.ContainerID != "content-scroll" || cmd.Delta != 240 || !cmd.Smooth {
		t.Errorf("second command = %+v, want smooth scroll 240 on content-scroll", cmd)
	}

	if err := conn.ReadJSON(&cmd); err != nil {
		t.Fatalf("read click: %v", err)
	}
	if cmd.Type != "click" || cmd.X != 195 || cmd.Y != 422 {
		t.Errorf("third command = %+v, want click at (195, 422)", cmd)
	}
}

func TestBridge_ReportsReachCallbacks(t *testing.T) {
	bridge := NewBridge()

	routes := make(chan string, 1)
	viewports := make(chan [2]int, 1)
	toggles := make(chan bool, 1)
	bridge.OnRoute = func(route string) { routes <- route }
	bridge.OnViewport = func(w, h int) { viewports <- [2]int{w, h} }
	bridge.OnToggle = func(enabled bool) { toggles <- enabled }

	ts := httptest.NewServer(New(Config{Bridge: bridge}))
	defer ts.Close()

	conn := dialBridge(t, ts)
	waitForClients(t, bridge, 1)

	if err := conn.WriteJSON(map[string]any{"type": "route", "route": "/documents"}); err != nil {
		t.Fatalf("write route report: %v", err)
	}
	select {
	case got := <-routes:
		if got != "/documents" {
			t.Errorf("OnRoute got %q, want /documents", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnRoute never fired")
	}

	if err := conn.WriteJSON(map[string]any{"type": "viewport", "width": 412, "height": 915}); err != nil {
		t.Fatalf("write viewport report: %v", err)
	}
	select {
	case got := <-viewports:
		if got != [2]int{412, 915} {
			t.Errorf("OnViewport got %v, want [412 915]", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnViewport never fired")
	}

	if err := conn.WriteJSON(map[string]any{"type": "toggle", "enabled": true}); err != nil {
		t.Fatalf("write toggle report: %v", err)
	}
	select {
	case got := <-toggles:
		if !got {
			t.Error("OnToggle got false, want true")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnToggle never fired")
	}
}

func TestBridge_NoClientsIsNotAnError(t *testing.T) {
	bridge := NewBridge()

	if err := bridge.Navigate(nav.RouteTasks); err != nil {
		t.Errorf("Navigate() with no clients error = %v", err)
	}
	if err := bridge.ClickAt(1, 2); err != nil {
		t.Errorf("ClickAt() with no clients error = %v", err)
	}
	if bridge.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", bridge.ClientCount())
	}
}

func TestBridge_DisconnectDropsClient(t *testing.T) {
	bridge := NewBridge()
	ts := httptest.NewServer(New(Config{Bridge: bridge}))
	defer ts.Close()

	conn := dialBridge(t, ts)
	waitForClients(t, bridge, 1)

	conn.Close()
	waitForClients(t, bridge, 0)
}
