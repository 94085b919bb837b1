package startup

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const staleBatchSize = 100

// ReapStale fails analyses stuck in processing longer than the stale period.
// The stored timestamp acts as the claim token, so a late finishing request loses the row.
func (s *Service) ReapStale() (int, error) {
	now := s.timestamp()

	list, err := s.repo.Find(
		StatusFilter{Statuses: []AnalysisStatus{StatusProcessing}},
		AnalyzedBeforeFilter{Before: now.Add(-s.staleAfter)},
		OrderByIDFilter{},
		PageFilter{Limit: staleBatchSize},
	)
	if err != nil {
		return 0, fmt.Errorf("find stale analyses: %w", err)
	}

	reaped := 0
	for i := range list {
		st := &list[i]
		if st.AnalysisTimestamp == nil {
			continue
		}

		if s.fail(st, *st.AnalysisTimestamp, ErrAnalysisTimedOut) {
			reaped++
		}
	}

	return reaped, nil
}

type StaleWorker struct {
	service  *Service
	interval time.Duration
}

func NewStaleWorker(service *Service, interval time.Duration) *StaleWorker {
	return &StaleWorker{service: service, interval: interval}
}

func (w *StaleWorker) Start(ctx context.Context) error {
	for {
		select {
		case <-time.After(w.interval):
			reaped, err := w.service.ReapStale()
			if err != nil {
				log.Error().Err(err).Msg("reap stale analyses")
				continue
			}

			if reaped > 0 {
				log.Info().Msgf("marked %d stale analyses as failed", reaped)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
