package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"kone-backend/internal/metrics"
	"kone-backend/internal/state"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is one push to UI clients: either a collection refresh or a
// staleness transition of the live channel.
type Message struct {
	Type       string    `json:"type"` // "refresh" or "staleness"
	Collection string    `json:"collection,omitempty"`
	Tab        string    `json:"tab,omitempty"`
	Source     string    `json:"source,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
	Stale      bool      `json:"stale,omitempty"`
}

// Hub pushes refresh and staleness events to connected UI clients so
// they can re-render without polling.
type Hub struct {
	log        *zap.Logger
	clientsMux sync.Mutex
	clients    map[*websocket.Conn]bool
	broadcast  chan Message
	done       chan struct{}
}

func NewHub(log *zap.Logger) *Hub {
	h := &Hub{
		log:       log,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Message, 64),
		done:      make(chan struct{}),
	}
	go h.run()
	return h
}

// PublishRefresh converts a coordinator event into a client push.
func (h *Hub) PublishRefresh(e state.Event) {
	h.publish(Message{
		Type:       "refresh",
		Collection: e.Collection,
		Tab:        e.Tab,
		Source:     string(e.Source),
		UpdatedAt:  e.UpdatedAt,
	})
}

// PublishStaleness tells clients the live channel dropped or recovered.
func (h *Hub) PublishStaleness(stale bool) {
	h.publish(Message{Type: "staleness", Stale: stale, UpdatedAt: time.Now()})
}

func (h *Hub) publish(m Message) {
	select {
	case h.broadcast <- m:
	default:
		h.log.Warn("stream broadcast buffer full, dropping message",
			zap.String("type", m.Type))
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until
// the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()
	metrics.StreamClients.Inc()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			metrics.StreamClients.Dec()
			break
		}
	}
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			return
		case m := <-h.broadcast:
			h.clientsMux.Lock()
			for client := range h.clients {
				if err := client.WriteJSON(m); err != nil {
					client.Close()
					delete(h.clients, client)
					metrics.StreamClients.Dec()
				}
			}
			h.clientsMux.Unlock()
		}
	}
}

// Close stops the broadcaster and drops every client.
func (h *Hub) Close() {
	close(h.done)
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
