// Package websocket pushes connectivity and sync status to connected
// register UIs so the badge updates without waiting for the next poll.
package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains the set of connected register UIs and broadcasts status
type Hub struct {
	// Connected terminals map: TerminalID -> Client
	clients map[string]*Client

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Outbound broadcast messages
	broadcast chan []byte

	// Mutex for thread-safe access to clients map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[string]*Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.TerminalID]; ok {
				close(old.send)
				delete(h.clients, client.TerminalID)
			}
			h.clients[client.TerminalID] = client
			log.Printf("🖥️ Terminal connected: %s", client.TerminalID)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.TerminalID]; ok {
				delete(h.clients, client.TerminalID)
				close(client.send)
				log.Printf("📴 Terminal disconnected: %s", client.TerminalID)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends a typed JSON message to every connected terminal
func (h *Hub) Broadcast(msgType string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"type":    msgType,
		"payload": payload,
	})
	if err != nil {
		log.Printf("Error marshaling broadcast: %v", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		// Hub loop backed up; drop rather than block the sender
	}
}
