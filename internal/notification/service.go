package notification

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.openly.dev/pointy"
)

type DataProvider interface {
	Create(n *Notification) error
}

type Service struct {
	repo DataProvider
	now  func() time.Time
}

func NewService(repo DataProvider) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// NotifyAnalysis tells the owner the analysis of their startup has finished
func (s *Service) NotifyAnalysis(userID uuid.UUID, startupID int64, status, message string) error {
	n := &Notification{
		ID:          uuid.New(),
		CreatedAt:   s.now(),
		UserID:      userID,
		Type:        TypeAIInsight,
		Link:        pointy.String(linkAIInsights),
		ReferenceID: pointy.String(strconv.FormatInt(startupID, 10)),
		Icon:        pointy.String("solar:magic-stick-3-line-duotone"),
	}

	switch status {
	case "completed":
		n.Title = "AI analysis is ready"
		n.Body = "Your startup analysis has been completed. Open AI Insights to review it."
		n.IconBgColor = pointy.String("bg-green-100")
		n.IconColor = pointy.String("text-green-600")
	case "failed":
		n.Title = "AI analysis failed"
		n.Body = "We could not complete your startup analysis. You can request it again."
		if message != "" {
			n.Body = fmt.Sprintf("%s Reason: %s", n.Body, message)
		}
		n.IconBgColor = pointy.String("bg-red-100")
		n.IconColor = pointy.String("text-red-600")
	default:
		return fmt.Errorf("unsupported analysis status for notification: %s", status)
	}

	if err := s.repo.Create(n); err != nil {
		return fmt.Errorf("create notification for user %s: %w", userID, err)
	}

	return nil
}
