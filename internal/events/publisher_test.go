package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type connStub struct {
	subject string
	data    []byte
	err     error
}

func (c *connStub) Publish(subject string, data []byte) error {
	c.subject = subject
	c.data = data

	return c.err
}

func TestUnitPublishAnalysis(t *testing.T) {
	event := AnalysisEvent{
		StartupID: 42,
		UserID:    uuid.New(),
		Status:    "completed",
		Timestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	t.Run("published to analysis subject", func(t *testing.T) {
		conn := &connStub{}
		require.NoError(t, NewPublisher(conn).PublishAnalysis(event))
		require.Equal(t, SubjectAnalysis, conn.subject)

		var got map[string]any
		require.NoError(t, json.Unmarshal(conn.data, &got))
		require.EqualValues(t, 42, got["startup_id"])
		require.Equal(t, "completed", got["status"])
	})

	t.Run("broker error", func(t *testing.T) {
		conn := &connStub{err: errors.New("nats: connection closed")}
		err := NewPublisher(conn).PublishAnalysis(event)
		require.ErrorIs(t, err, conn.err)
	})
}
