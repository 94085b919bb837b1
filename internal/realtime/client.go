package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/rise-platform/rise-edge/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueueSize  = 64
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]struct{}
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendQueueSize),
		topics: make(map[string]struct{}),
	}
}

func (c *Client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) push(msg OutgoingMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("event", msg.Event).Msg("marshal realtime message")
		return
	}

	if !c.enqueue(data) {
		log.Warn().Str("topic", msg.Topic).Msg("realtime client queue is full, reply dropped")
	}
}

func (c *Client) reply(topic, ref, status string, response any) {
	c.push(OutgoingMessage{
		Topic:   topic,
		Event:   EventReply,
		Ref:     ref,
		Payload: replyPayload{Status: status, Response: response},
	})
}

func (c *Client) handle(msg IncomingMessage) {
	switch msg.Event {
	case EventJoin:
		id, ok := parseTopic(msg.Topic)
		if !ok {
			c.reply(msg.Topic, msg.Ref, "error", map[string]string{"reason": "unknown topic"})
			return
		}

		c.hub.subscribe(c, msg.Topic)
		c.reply(msg.Topic, msg.Ref, "ok", map[string][]binding{
			EventChanges: {{
				ID:     bindingID,
				Event:  "UPDATE",
				Schema: "public",
				Table:  "startups",
				Filter: fmt.Sprintf("id=eq.%d", id),
			}},
		})
		c.push(OutgoingMessage{
			Topic: msg.Topic,
			Event: EventSystem,
			Payload: map[string]string{
				"channel":   msg.Topic,
				"extension": EventChanges,
				"message":   "Subscribed to PostgreSQL",
				"status":    "ok",
			},
		})
	case EventLeave:
		c.hub.unsubscribe(c, msg.Topic)
		c.reply(msg.Topic, msg.Ref, "ok", map[string]string{})
	case EventHeartbeat:
		c.reply(phoenixTopic, msg.Ref, "ok", map[string]string{})
	default:
		log.Debug().Str("event", msg.Event).Str("topic", msg.Topic).Msg("skip unsupported realtime event")
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
		metrics.RealtimeClientsGauge.Dec()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("realtime connection closed")
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn().Err(err).Msg("unmarshal realtime message")
			continue
		}

		// heartbeats from the client also extend the read deadline
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.handle(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Msg("write realtime message")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
