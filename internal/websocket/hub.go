package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	HouseholdID() int32
	Send(data []byte) error
	Close() error
}

// Hub fans household events out to that household's connections.
// It is safe for concurrent use.
type Hub struct {
	households map[int32]map[string]ClientInterface
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		households: make(map[int32]map[string]ClientInterface),
	}
}

// Register adds a client under its household
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	householdID := client.HouseholdID()
	if h.households[householdID] == nil {
		h.households[householdID] = make(map[string]ClientInterface)
	}
	h.households[householdID][client.ID()] = client

	log.Debug().
		Int32("household_id", householdID).
		Str("client_id", client.ID()).
		Msg("WebSocket client registered")
}

// Unregister removes a client. Unknown clients are ignored.
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	householdID := client.HouseholdID()
	clients, ok := h.households[householdID]
	if !ok {
		return
	}
	if _, exists := clients[client.ID()]; !exists {
		return
	}

	delete(clients, client.ID())
	if len(clients) == 0 {
		delete(h.households, householdID)
	}

	log.Debug().
		Int32("household_id", householdID).
		Str("client_id", client.ID()).
		Msg("WebSocket client unregistered")
}

// Broadcast sends an event to every client of a household
func (h *Hub) Broadcast(householdID int32, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Int32("household_id", householdID).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}

	clients := h.clientsOf(householdID)
	if len(clients) == 0 {
		return
	}

	for _, client := range clients {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Int32("household_id", householdID).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Int32("household_id", householdID).
		Str("event_type", event.Type).
		Int("client_count", len(clients)).
		Msg("Broadcast event")
}

// clientsOf copies the client set so sends happen without the lock
func (h *Hub) clientsOf(householdID int32) []ClientInterface {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.households[householdID]
	out := make([]ClientInterface, 0, len(clients))
	for _, client := range clients {
		out = append(out, client)
	}
	return out
}

// ClientCount returns the number of clients connected to a household
func (h *Hub) ClientCount(householdID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.households[householdID])
}

// TotalClientCount returns the number of connected clients across all households
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.households {
		total += len(clients)
	}
	return total
}

// CloseAll disconnects every client, used on shutdown
func (h *Hub) CloseAll() {
	h.mu.Lock()
	households := h.households
	h.households = make(map[int32]map[string]ClientInterface)
	h.mu.Unlock()

	closed := 0
	for _, clients := range households {
		for _, client := range clients {
			_ = client.Close()
			closed++
		}
	}
	log.Info().Int("client_count", closed).Msg("WebSocket hub closed")
}
