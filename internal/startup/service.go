package startup

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/rise-platform/rise-edge/internal/ai"
	"github.com/rise-platform/rise-edge/internal/events"
)

type DataProvider interface {
	GetByID(id int64) (*Startup, error)
	Find(filters ...Filter) ([]Startup, error)
	MarkProcessing(id int64, claimedAt, staleBefore time.Time) (bool, error)
	FinishAnalysis(id int64, claimedAt time.Time, status AnalysisStatus, analysis datatypes.JSON, finishedAt time.Time) error
	UpdateReadinessScore(id int64, score *int, updatedAt time.Time) error
	UpdateInsights(id int64, insights *string, updatedAt time.Time) error
}

type Publisher interface {
	PublishAnalysis(event events.AnalysisEvent) error
}

type Notifier interface {
	NotifyAnalysis(userID uuid.UUID, startupID int64, status, message string) error
}

type Service struct {
	repo       DataProvider
	ai         ai.Completer
	publisher  Publisher
	notifier   Notifier
	staleAfter time.Duration
	// finetunedModel is empty when the fine-tuned analysis is not available
	finetunedModel string
	now            func() time.Time
}

func NewService(repo DataProvider, completer ai.Completer, pb Publisher, nt Notifier, staleAfter time.Duration, finetunedModel string) *Service {
	return &Service{
		repo:           repo,
		ai:             completer,
		publisher:      pb,
		notifier:       nt,
		staleAfter:     staleAfter,
		finetunedModel: finetunedModel,
		now:            time.Now,
	}
}

// timestamp is truncated to the database precision, it is compared as a claim token
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
