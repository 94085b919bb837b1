package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub keeps the subscribers of every topic
type Hub struct {
	mu sync.RWMutex

	topics map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.topics[topic]
	if !ok {
		clients = make(map[*Client]struct{})
		h.topics[topic] = clients
	}

	clients[c] = struct{}{}
	c.topics[topic] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.detach(c, topic)
}

// remove drops the client from all topics and closes its send queue
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic := range c.topics {
		h.detach(c, topic)
	}

	close(c.send)
}

func (h *Hub) detach(c *Client, topic string) {
	delete(c.topics, topic)

	clients, ok := h.topics[topic]
	if !ok {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(h.topics, topic)
	}
}

// Broadcast sends the message to every subscriber of the topic and returns the number of deliveries
func (h *Hub) Broadcast(topic, event string, payload any) (int, error) {
	data, err := json.Marshal(OutgoingMessage{
		Topic:   topic,
		Event:   event,
		Payload: payload,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal %s message: %w", event, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.topics[topic] {
		if !c.enqueue(data) {
			log.Warn().Str("topic", topic).Msg("realtime client queue is full, message dropped")
			continue
		}
		delivered++
	}

	return delivered, nil
}

func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.topics[topic])
}
