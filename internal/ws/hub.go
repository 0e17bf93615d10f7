package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "messaging_events"

// Event types pushed to connected sessions.
const (
	EventNewMessage   = "new_message"
	EventNotification = "notification"
)

// Event represents a real-time event sent via WebSocket
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub manages WebSocket clients and pushes events to participants.
// Clients are grouped by participant key ("student:12", "mentor:3")
// because the two account id spaces overlap.
type Hub struct {
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Push to a specific participant
	push chan *targetedEvent

	mu          sync.RWMutex
	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
}

type targetedEvent struct {
	ParticipantKey string
	Event          *Event
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		push:        make(chan *targetedEvent, 256),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.participantKey] == nil {
				h.clients[client.participantKey] = make(map[*Client]bool)
			}
			h.clients[client.participantKey][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.participantKey]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.participantKey)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.push:
			h.mu.RLock()
			if clients, ok := h.clients[msg.ParticipantKey]; ok {
				data, err := json.Marshal(msg.Event)
				if err == nil {
					for client := range clients {
						select {
						case client.send <- data:
						default:
							close(client.send)
							delete(clients, client)
						}
					}
				}
			}
			h.mu.RUnlock()

		case <-h.ctx.Done():
			return
		}
	}
}

// SendToParticipant sends an event to a participant. With Redis the event
// goes through pub-sub so every instance (this one included) delivers it;
// without Redis it is pushed to local sessions only. Absence of a connected
// session is not an error; the event is dropped for participants with no
// open socket.
func (h *Hub) SendToParticipant(participantKey string, event *Event) {
	if h.redisClient != nil {
		msg := &redisMessage{ParticipantKey: participantKey, Event: event}
		data, err := json.Marshal(msg)
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, data) //nolint:errcheck
		}
		return
	}

	select {
	case h.push <- &targetedEvent{ParticipantKey: participantKey, Event: event}:
	default:
		// Push buffer full; live events are best-effort and must not
		// block the write path.
	}
}

type redisMessage struct {
	ParticipantKey string `json:"participant_key"`
	Event          *Event `json:"event"`
}

// subscribeRedis listens for events published by other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rm redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &rm); err == nil {
				// Local broadcast only (never re-publish to Redis)
				select {
				case h.push <- &targetedEvent{ParticipantKey: rm.ParticipantKey, Event: rm.Event}:
				default:
				}
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
