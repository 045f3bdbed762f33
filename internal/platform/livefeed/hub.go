// Package livefeed pushes competition activity (votes and moderation
// outcomes) to websocket clients watching a competition.
package livefeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	contractsv1 "photocontest/contracts/gen/events/v1"

	"github.com/gorilla/websocket"
)

// Topics relayed to watchers.
var Topics = []string{"vote.cast", "photo.approved", "photo.rejected", "photo.deleted"}

// Message is the frame sent to clients.
type Message struct {
	Type          string          `json:"type"`
	CompetitionID string          `json:"competition_id"`
	PhotoID       string          `json:"photo_id,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Subscriber is the part of the event bus the hub consumes from.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, consumer string, handler func(context.Context, contractsv1.Envelope) error)
}

// Hub tracks websocket clients per competition and fans messages out to them.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan Message
	done       chan struct{}
	running    atomic.Bool
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[string]map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Message, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if !h.running.CompareAndSwap(false, true) {
		return
	}
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for competitionID, clients := range h.clients {
				for c := range clients {
					close(c.send)
				}
				delete(h.clients, competitionID)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.competitionID] == nil {
				h.clients[c.competitionID] = make(map[*client]struct{})
			}
			h.clients[c.competitionID][c] = struct{}{}
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case message := <-h.broadcast:
			payload, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("live feed message encode failed",
					"event", "livefeed_encode_failed",
					"module", "internal/platform/livefeed",
					"layer", "platform",
					"error", err.Error(),
				)
				continue
			}
			h.mu.Lock()
			for c := range h.clients[message.CompetitionID] {
				select {
				case c.send <- payload:
				default:
					h.drop(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with mu held.
func (h *Hub) drop(c *client) {
	clients, ok := h.clients[c.competitionID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.clients, c.competitionID)
	}
}

// ClientCount reports how many clients watch competitionID.
func (h *Hub) ClientCount(competitionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[competitionID])
}

// SubscribeTo relays every live feed topic from bus until ctx is cancelled.
func (h *Hub) SubscribeTo(ctx context.Context, bus Subscriber) {
	for _, topic := range Topics {
		bus.Subscribe(ctx, topic, "livefeed", h.Consume)
	}
}

// Consume converts a domain event into a live feed message.
func (h *Hub) Consume(ctx context.Context, event contractsv1.Envelope) error {
	var fields struct {
		PhotoID       string `json:"photo_id"`
		CompetitionID string `json:"competition_id"`
	}
	if len(event.Data) > 0 {
		if err := json.Unmarshal(event.Data, &fields); err != nil {
			return err
		}
	}
	competitionID := event.PartitionKey
	if competitionID == "" {
		competitionID = fields.CompetitionID
	}
	if competitionID == "" {
		return nil
	}
	message := Message{
		Type:          event.EventType,
		CompetitionID: competitionID,
		PhotoID:       fields.PhotoID,
		Data:          event.Data,
		Timestamp:     event.OccurredAt,
	}
	select {
	case h.broadcast <- message:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// accepting reports whether Run is looping, so a registration can be served.
func (h *Hub) accepting() bool {
	if !h.running.Load() {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// ServeCompetition upgrades the request and streams messages for competitionID. It
// answers 503 unless Run is active.
func (h *Hub) ServeCompetition(w http.ResponseWriter, r *http.Request, competitionID string) {
	if !h.accepting() {
		http.Error(w, "live feed unavailable", http.StatusServiceUnavailable)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("live feed upgrade failed",
			"event", "livefeed_upgrade_failed",
			"module", "internal/platform/livefeed",
			"layer", "platform",
			"competition_id", competitionID,
			"error", err.Error(),
		)
		return
	}
	c := &client{
		hub:           h,
		conn:          conn,
		send:          make(chan []byte, 64),
		competitionID: competitionID,
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	case <-r.Context().Done():
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}
