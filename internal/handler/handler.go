package handler

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"batepapo/internal/chat"
)

// Handler holds application dependencies
type Handler struct {
	Directory *chat.Directory
	Messages  *chat.Messages
	Hub       *Hub
	Gatherer  prometheus.Gatherer
}

// New creates a new Handler with the given dependencies
func New(dir *chat.Directory, msgs *chat.Messages, hub *Hub, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		Directory: dir,
		Messages:  msgs,
		Hub:       hub,
		Gatherer:  gatherer,
	}
}

// SetupRouter configures and returns the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// REST API
	r.HandleFunc("/participants", h.GetParticipants).Methods("GET")
	r.HandleFunc("/participants", h.CreateParticipant).Methods("POST")
	r.HandleFunc("/messages", h.GetMessages).Methods("GET")
	r.HandleFunc("/messages", h.CreateMessage).Methods("POST")
	r.HandleFunc("/messages/{id}", h.UpdateMessage).Methods("PUT")
	r.HandleFunc("/messages/{id}", h.DeleteMessage).Methods("DELETE")
	r.HandleFunc("/status", h.PostStatus).Methods("POST")

	// WebSocket
	if h.Hub != nil {
		r.HandleFunc("/ws", h.Hub.HandleWebSocket).Methods("GET")
	}

	if h.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	return r
}
