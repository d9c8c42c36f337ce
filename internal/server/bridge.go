package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/airnav/internal/nav"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

const bridgeWriteTimeout = time.Second

// bridgeCommand is pushed to the UI over the websocket.
type bridgeCommand struct {
	Type        string    `json:"type"`
	Route       nav.Route `json:"route,omitempty"`
	ContainerID string    `json:"containerId,omitempty"`
	Delta       int       `json:"delta,omitempty"`
	Smooth      bool      `json:"smooth,omitempty"`
	// Click coordinates stay explicit: 0 is a valid edge coordinate.
	X      int `json:"x"`
	Y      int `json:"y"`
	Status any `json:"status,omitempty"`
}

// bridgeReport is what the UI sends back: the screen it navigated to,
// its viewport size, or the user flipping the gesture toggle.
type bridgeReport struct {
	Type    string `json:"type"`
	Route   string `json:"route,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Enabled *bool  `json:"enabled,omitempty"`
}

// Bridge is the websocket link to the hosting UI. Outbound it carries
// navigate, scroll and click commands plus periodic status frames;
// inbound it receives route, viewport and toggle reports. It is the
// Surface the dispatcher writes to.
type Bridge struct {
	// OnRoute, OnViewport and OnToggle handle inbound reports. Set
	// them before the bridge starts serving connections.
	OnRoute    func(route string)
	OnViewport func(width, height int)
	OnToggle   func(enabled bool)

	// StatusFunc, when set, is polled for the periodic status frame.
	StatusFunc func() any

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var _ nav.Surface = (*Bridge)(nil)

// NewBridge creates the bridge and starts its status push loop.
func NewBridge() *Bridge {
	b := &Bridge{
		clients: make(map[*websocket.Conn]bool),
	}
	go b.pushStatus()
	return b
}

// ServeHTTP upgrades the connection and reads UI reports until the
// peer goes away.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("bridge: upgrade: %v", err)
		return
	}

	b.mu.Lock()
	b.clients[conn] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.clients, conn)
		b.mu.Unlock()
		conn.Close()
	}()

	for {
		var report bridgeReport
		if err := conn.ReadJSON(&report); err != nil {
			return
		}
		b.handleReport(report)
	}
}

func (b *Bridge) handleReport(report bridgeReport) {
	switch report.Type {
	case "route":
		if b.OnRoute != nil {
			b.OnRoute(report.Route)
		}
	case "viewport":
		if b.OnViewport != nil {
			b.OnViewport(report.Width, report.Height)
		}
	case "toggle":
		if b.OnToggle != nil && report.Enabled != nil {
			b.OnToggle(*report.Enabled)
		}
	default:
		log.Printf("bridge: unknown report type %q", report.Type)
	}
}

// ClientCount returns the number of connected UIs.
func (b *Bridge) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Navigate pushes a navigate command. With no UI connected the command
// evaporates; the gesture is still confirmed and recorded.
func (b *Bridge) Navigate(route nav.Route) error {
	b.broadcast(bridgeCommand{Type: "navigate", Route: route})
	return nil
}

// ScrollBy pushes a scroll command for the given container.
func (b *Bridge) ScrollBy(containerID string, delta int, smooth bool) error {
	b.broadcast(bridgeCommand{Type: "scroll", ContainerID: containerID, Delta: delta, Smooth: smooth})
	return nil
}

// ClickAt pushes a click command in viewport coordinates.
func (b *Bridge) ClickAt(x, y int) error {
	b.broadcast(bridgeCommand{Type: "click", X: x, Y: y})
	return nil
}

// broadcast writes cmd to every client, dropping clients whose writes
// fail or stall past the write timeout.
func (b *Bridge) broadcast(cmd bridgeCommand) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for conn := range b.clients {
		conn.SetWriteDeadline(time.Now().Add(bridgeWriteTimeout))
		if err := conn.WriteJSON(cmd); err != nil {
			log.Printf("bridge: dropping client: %v", err)
			conn.Close()
			delete(b.clients, conn)
		}
	}
}

// pushStatus sends a status frame to all clients twice a second.
func (b *Bridge) pushStatus() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if b.StatusFunc == nil || b.ClientCount() == 0 {
			continue
		}
		b.broadcast(bridgeCommand{Type: "status", Status: b.StatusFunc()})
	}
}
