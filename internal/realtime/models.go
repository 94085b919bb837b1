package realtime

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rise-platform/rise-edge/internal/events"
)

const (
	EventJoin      = "phx_join"
	EventLeave     = "phx_leave"
	EventHeartbeat = "heartbeat"
	EventReply     = "phx_reply"
	EventSystem    = "system"
	EventChanges   = "postgres_changes"

	phoenixTopic = "phoenix"
	topicPrefix  = "realtime:startups:"

	// bindingID identifies the single postgres_changes binding of a startup topic
	bindingID = 1
)

// Topic returns the channel name clients join to follow one startup row
func Topic(startupID int64) string {
	return topicPrefix + strconv.FormatInt(startupID, 10)
}

func parseTopic(topic string) (int64, bool) {
	raw, ok := strings.CutPrefix(topic, topicPrefix)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

type IncomingMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type OutgoingMessage struct {
	Topic   string `json:"topic"`
	Event   string `json:"event"`
	Payload any    `json:"payload"`
	Ref     string `json:"ref,omitempty"`
}

type replyPayload struct {
	Status   string `json:"status"`
	Response any    `json:"response"`
}

type binding struct {
	ID     int    `json:"id"`
	Event  string `json:"event"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Filter string `json:"filter"`
}

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ChangeRecord carries the analysis columns of the updated startup row
type ChangeRecord struct {
	ID                int64     `json:"id"`
	AnalysisStatus    string    `json:"analysis_status"`
	AnalysisTimestamp time.Time `json:"analysis_timestamp"`
}

type Change struct {
	Schema          string         `json:"schema"`
	Table           string         `json:"table"`
	CommitTimestamp time.Time      `json:"commit_timestamp"`
	Type            string         `json:"type"`
	Record          ChangeRecord   `json:"record"`
	Old             map[string]any `json:"old"`
	Columns         []Column       `json:"columns"`
	Errors          any            `json:"errors"`
}

type ChangesPayload struct {
	Data Change `json:"data"`
	IDs  []int  `json:"ids"`
}

var analysisColumns = []Column{
	{Name: "id", Type: "int8"},
	{Name: "analysis_status", Type: "text"},
	{Name: "analysis_timestamp", Type: "timestamptz"},
}

func NewAnalysisChange(ev events.AnalysisEvent) ChangesPayload {
	return ChangesPayload{
		Data: Change{
			Schema:          "public",
			Table:           "startups",
			CommitTimestamp: ev.Timestamp,
			Type:            "UPDATE",
			Record: ChangeRecord{
				ID:                ev.StartupID,
				AnalysisStatus:    ev.Status,
				AnalysisTimestamp: ev.Timestamp,
			},
			Old:     map[string]any{},
			Columns: analysisColumns,
		},
		IDs: []int{bindingID},
	}
}
