package chat

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Message is the single chat event shape, inbound and outbound.
type Message struct {
	User string `json:"user"`
	Msg  string `json:"msg"`
}

// Hub is the broadcast fan-out for the one shared chat room. All state
// is owned by the Run goroutine; the channels serialize access.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	log        zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Register adds a connected participant.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a participant. Safe to call for a client that was
// already evicted.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Broadcast queues a message for fan-out to every participant,
// including the sender.
func (h *Hub) Broadcast(msg Message) {
	h.broadcast <- msg
}

// Run processes registrations and broadcasts until the hub is garbage
// collected with the process. Messages with an empty user or msg are
// dropped without notifying the sender.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Debug().Msg("chat client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Debug().Msg("chat client disconnected")
			}

		case msg := <-h.broadcast:
			if msg.User == "" || msg.Msg == "" {
				continue
			}
			payload, err := json.Marshal(msg)
			if err != nil {
				h.log.Error().Err(err).Msg("failed to marshal chat message")
				continue
			}
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer: drop it rather than block the room.
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}
