package events

import (
	"time"

	"github.com/google/uuid"
)

const SubjectAnalysis = "rise.startups.analysis"

type AnalysisEvent struct {
	StartupID int64     `json:"startup_id"`
	UserID    uuid.UUID `json:"user_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
