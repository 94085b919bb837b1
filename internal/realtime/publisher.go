package realtime

import (
	"github.com/rise-platform/rise-edge/internal/events"
)

// LocalPublisher hands analysis events to the hub of this instance.
// It replaces the broker when NATS is disabled.
type LocalPublisher struct {
	hub *Hub
}

func NewLocalPublisher(hub *Hub) *LocalPublisher {
	return &LocalPublisher{
		hub: hub,
	}
}

func (p *LocalPublisher) PublishAnalysis(ev events.AnalysisEvent) error {
	_, err := deliver(p.hub, ev)

	return err
}
