package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAIInsight = "ai_insight"

	linkAIInsights = "/ai-insights"
)

type Notification struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	UserID      uuid.UUID
	Type        string
	Title       string
	Body        string
	Link        *string
	IsRead      bool
	ReferenceID *string
	Icon        *string
	IconBgColor *string
	IconColor   *string
}

func (Notification) TableName() string {
	return "notifications"
}
