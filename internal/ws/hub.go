package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks connected clients and serializes their messages onto a single
// goroutine, so handlers never run concurrently with each other.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called when a client disconnects.
	OnDisconnect func(client *Client)

	clients map[string]*Client
	mu      sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Incoming:   make(chan *ClientMessage, 256),
		clients:    make(map[string]*Client),
	}
}

// NewClientID returns a fresh connection id.
func NewClientID() string {
	return "conn-" + uuid.NewString()[:8]
}

// Run processes registrations and messages until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID)

		case client := <-h.Unregister:
			h.mu.Lock()
			_, ok := h.clients[client.ID]
			if ok {
				delete(h.clients, client.ID)
				client.close()
			}
			h.mu.Unlock()
			if !ok {
				continue
			}
			slog.Info("client disconnected", "client", client.ID)
			if h.OnDisconnect != nil {
				h.OnDisconnect(client)
			}

		case cm := <-h.Incoming:
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.close()
		delete(h.clients, id)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
