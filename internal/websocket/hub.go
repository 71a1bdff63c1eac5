package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/autolot/dealership-backend/pkg/logger"
)

// Event types pushed to storefront live feed subscribers.
const (
	EventVehicleAdded   = "vehicle_added"
	EventVehicleSold    = "vehicle_sold"
	EventVehicleUpdated = "vehicle_updated"
	EventPromotion      = "promotion"
)

// Event is the wire format of a live feed message.
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client is one connected feed subscriber. Subscribers are anonymous; the
// feed is read-only from their side.
type Client struct {
	Hub  *Hub
	Conn *Conn
	Send chan []byte
}

// Hub fans inventory events out to every connected subscriber.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
	}
}

// Run processes registrations and broadcasts. Call it once in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()

			logger.Debug("Live feed client connected", map[string]interface{}{
				"clients": count,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()

			logger.Debug("Live feed client disconnected", map[string]interface{}{
				"clients": count,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; drop the message rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a subscriber to the feed.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Publish serializes an event and queues it for every subscriber.
func (h *Hub) Publish(eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal live feed event", err, map[string]interface{}{
			"type": eventType,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Live feed broadcast queue full, dropping event", map[string]interface{}{
			"type": eventType,
		})
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
