package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/rise-platform/rise-edge/internal/events"
)

// Subscriber is the part of *nats.Conn used by the consumer
type Subscriber interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// Consumer forwards analysis events from the broker to the websocket subscribers.
// Every instance subscribes without a queue group since clients are spread over instances.
type Consumer struct {
	conn Subscriber
	hub  *Hub
}

func NewConsumer(conn Subscriber, hub *Hub) *Consumer {
	return &Consumer{
		conn: conn,
		hub:  hub,
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	sub, err := c.conn.Subscribe(events.SubjectAnalysis, c.handle)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", events.SubjectAnalysis, err)
	}

	log.Info().Str("subject", events.SubjectAnalysis).Msg("realtime consumer is started")

	<-ctx.Done()

	if err := sub.Unsubscribe(); err != nil {
		log.Error().Err(err).Msg("unsubscribe realtime consumer")
	}

	return nil
}

func (c *Consumer) handle(msg *nats.Msg) {
	if _, err := c.dispatch(msg.Data); err != nil {
		log.Error().Err(err).Msg("dispatch analysis event")
	}
}

func (c *Consumer) dispatch(data []byte) (int, error) {
	var ev events.AnalysisEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return 0, fmt.Errorf("unmarshal analysis event: %w", err)
	}

	return deliver(c.hub, ev)
}

func deliver(hub *Hub, ev events.AnalysisEvent) (int, error) {
	topic := Topic(ev.StartupID)
	delivered, err := hub.Broadcast(topic, EventChanges, NewAnalysisChange(ev))
	if err != nil {
		return 0, err
	}

	log.Debug().Str("topic", topic).Int("clients", delivered).Str("status", ev.Status).Msg("analysis event dispatched")

	return delivered, nil
}
