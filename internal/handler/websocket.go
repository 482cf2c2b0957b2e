package handler

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"batepapo/internal/chat"
	"batepapo/internal/model"
)

// broadcastBuffer is the number of events queued for the broadcaster
const broadcastBuffer = 100

// Hub fans message events out to websocket clients that can see them.
// Delivery is best effort: events are dropped when the buffer is full.
type Hub struct {
	Clients   map[*websocket.Conn]string
	ClientMu  sync.RWMutex
	Broadcast chan model.Event

	upgrader websocket.Upgrader
}

// NewHub creates a hub accepting connections from allowedOrigins
func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		Clients:   make(map[*websocket.Conn]string),
		Broadcast: make(chan model.Event, broadcastBuffer),
		upgrader:  createUpgrader(allowedOrigins),
	}
}

// createUpgrader creates a WebSocket upgrader with the given allowed origins
func createUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowedMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		allowedMap[origin] = true
	}

	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowedMap[origin]
		},
	}
}

// Publish queues event without blocking
func (h *Hub) Publish(event model.Event) {
	select {
	case h.Broadcast <- event:
	default:
		log.Printf("[WebSocket] ⚠️  Broadcast buffer full, dropping %s for message %s", event.Type, event.Message.ID)
	}
}

// HandleWebSocket handles GET /ws?user=name
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// ブラウザはWebSocketにヘッダーを付けられないためクエリで受け取る
	user := r.URL.Query().Get("user")
	if user == "" {
		fail(w, "GET /ws", http.StatusUnprocessableEntity, "user query parameter is required", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.ClientMu.Lock()
	h.Clients[conn] = user
	totalClients := len(h.Clients)
	h.ClientMu.Unlock()

	log.Printf("New WebSocket connection for %q. Total clients: %d", user, totalClients)

	// クライアントからのメッセージを受信（キープアライブ用）
	for {
		var msg interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			h.ClientMu.Lock()
			delete(h.Clients, conn)
			remainingClients := len(h.Clients)
			h.ClientMu.Unlock()
			log.Printf("[WebSocket] Client disconnected. Total clients: %d", remainingClients)
			break
		}
	}
}

type subscriber struct {
	conn *websocket.Conn
	user string
}

// HandleBroadcast sends each event to the clients allowed to see its message
func (h *Hub) HandleBroadcast() {
	for event := range h.Broadcast {
		// clients マップをスナップショットしてからロックを外すことで、
		// range 中に delete して "concurrent map iteration and map write"
		// が発生するのを防ぐ
		h.ClientMu.RLock()
		snapshot := make([]subscriber, 0, len(h.Clients))
		for conn, user := range h.Clients {
			snapshot = append(snapshot, subscriber{conn: conn, user: user})
		}
		h.ClientMu.RUnlock()

		for _, s := range snapshot {
			if !chat.Visible(event.Message, s.user) {
				continue
			}
			if err := s.conn.WriteJSON(event); err != nil {
				s.conn.Close()
				h.ClientMu.Lock()
				delete(h.Clients, s.conn)
				h.ClientMu.Unlock()
			}
		}
	}
}
