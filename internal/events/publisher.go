package events

import (
	"encoding/json"
	"fmt"
)

// Conn is the part of *nats.Conn used for publishing
type Conn interface {
	Publish(subject string, data []byte) error
}

type Publisher struct {
	conn Conn
}

func NewPublisher(conn Conn) *Publisher {
	return &Publisher{
		conn: conn,
	}
}

func (p *Publisher) PublishAnalysis(event AnalysisEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal analysis event: %w", err)
	}

	if err = p.conn.Publish(SubjectAnalysis, data); err != nil {
		return fmt.Errorf("publish to %s: %w", SubjectAnalysis, err)
	}

	return nil
}
