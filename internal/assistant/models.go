package assistant

import (
	"time"

	"github.com/google/uuid"

	"github.com/rise-platform/rise-edge/internal/ai"
)

type UserType string

const (
	UserTypeStartup  UserType = "startup"
	UserTypeInvestor UserType = "investor"
	UserTypeUnknown  UserType = "unknown"
)

// Log is one question and answer pair of the conversation, never read back
type Log struct {
	ID               int64
	CreatedAt        time.Time
	UserID           uuid.UUID
	UserMessage      string
	AssistantMessage string
	UserType         UserType
}

func (Log) TableName() string {
	return "ai_assistant_logs"
}

type ReplyRequest struct {
	// AuthHeader is the raw Authorization header, may be empty
	AuthHeader string
	Messages   []ai.Message `validate:"required,min=1,dive"`
}
