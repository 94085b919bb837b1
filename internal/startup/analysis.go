package startup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rise-platform/rise-edge/internal/ai"
	"github.com/rise-platform/rise-edge/internal/events"
	"github.com/rise-platform/rise-edge/internal/metrics"
)

const analysisTemperature = 0.5

// RequestAnalysis runs the whole analysis lifecycle for the startup:
// processing -> completed or failed. Only one analysis per row runs at a time.
func (s *Service) RequestAnalysis(ctx context.Context, id int64) error {
	return s.requestAnalysis(ctx, id, "")
}

// RequestFinetunedAnalysis is RequestAnalysis on the fine-tuned model
func (s *Service) RequestFinetunedAnalysis(ctx context.Context, id int64) error {
	if s.finetunedModel == "" {
		return ErrFinetunedModelMissing
	}

	return s.requestAnalysis(ctx, id, s.finetunedModel)
}

func (s *Service) requestAnalysis(ctx context.Context, id int64, model string) error {
	if id <= 0 {
		return ErrMissingStartupID
	}

	// the external call and the final write must survive a disconnected client
	ctx = context.WithoutCancel(ctx)

	st, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: #%d", ErrStartupNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("fetch startup data: %w", err)
	}

	claimedAt := s.timestamp()
	claimed, err := s.repo.MarkProcessing(id, claimedAt, claimedAt.Add(-s.staleAfter))
	if err != nil {
		return err
	}
	if !claimed {
		return fmt.Errorf("%w: #%d", ErrAnalysisInProgress, id)
	}
	s.statusChanged(st, StatusProcessing, claimedAt, "")

	analysis, err := s.analyze(ctx, st, model)
	if err != nil {
		s.fail(st, claimedAt, err)

		return err
	}

	finishedAt := s.timestamp()
	err = s.repo.FinishAnalysis(id, claimedAt, StatusCompleted, analysis, finishedAt)
	if err != nil {
		if !errors.Is(err, ErrClaimLost) {
			s.fail(st, claimedAt, err)
		}

		return err
	}
	s.statusChanged(st, StatusCompleted, finishedAt, "")

	log.Info().Int64("startup_id", id).Str("model", model).Msg("analysis completed")

	return nil
}

func (s *Service) analyze(ctx context.Context, st *Startup, model string) (datatypes.JSON, error) {
	req := ai.Prompt(BuildAnalysisPrompt(st), analysisTemperature)
	req.JSON = true
	req.Model = model

	reply, err := s.ai.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate analysis: %w", err)
	}

	obj, err := ai.DecodeObject(reply)
	if err != nil {
		log.Warn().Err(err).Int64("startup_id", st.ID).Str("reply", reply).Msg("unable to parse analysis")

		return nil, err
	}

	return datatypes.JSON(obj), nil
}

// fail stores the error in place of the analysis, failures here are only logged
func (s *Service) fail(st *Startup, claimedAt time.Time, cause error) bool {
	log.Error().Err(cause).Int64("startup_id", st.ID).Msg("analysis failed")

	payload, err := json.Marshal(map[string]string{"error": cause.Error()})
	if err != nil {
		log.Error().Err(err).Int64("startup_id", st.ID).Msg("marshal analysis error")

		return false
	}

	finishedAt := s.timestamp()
	if err = s.repo.FinishAnalysis(st.ID, claimedAt, StatusFailed, payload, finishedAt); err != nil {
		log.Error().Err(err).Int64("startup_id", st.ID).Msg("store failed analysis status")

		return false
	}

	s.statusChanged(st, StatusFailed, finishedAt, cause.Error())

	return true
}

func (s *Service) statusChanged(st *Startup, status AnalysisStatus, at time.Time, message string) {
	metrics.CollectAnalysisStatus(string(status))

	err := s.publisher.PublishAnalysis(events.AnalysisEvent{
		StartupID: st.ID,
		UserID:    st.UserID,
		Status:    string(status),
		Timestamp: at,
	})
	if err != nil {
		log.Error().Err(err).Int64("startup_id", st.ID).Str("status", string(status)).Msg("publish analysis event")
	}

	if !status.Final() {
		return
	}

	if err = s.notifier.NotifyAnalysis(st.UserID, st.ID, string(status), message); err != nil {
		log.Error().Err(err).Int64("startup_id", st.ID).Msg("notify analysis owner")
	}
}
