package startup

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rise-platform/rise-edge/internal/ai"
)

const (
	readinessTemperature = 0.1
	readinessMaxTokens   = 15

	minReadinessScore = 0
	maxReadinessScore = 100
)

var digitsRe = regexp.MustCompile(`\d+`)

// CalculateReadiness asks the provider for a 0..100 score and stores it, nil when the reply has no number
func (s *Service) CalculateReadiness(ctx context.Context, id int64) (*int, error) {
	st, err := s.load(id)
	if err != nil {
		return nil, err
	}

	req := ai.Prompt(BuildReadinessPrompt(st), readinessTemperature)
	req.MaxTokens = readinessMaxTokens

	reply, err := s.ai.Complete(context.WithoutCancel(ctx), req)
	if err != nil && !errors.Is(err, ai.ErrEmptyReply) {
		return nil, fmt.Errorf("generate readiness score: %w", err)
	}

	score := ParseReadinessScore(reply)
	if score == nil {
		log.Warn().Int64("startup_id", id).Str("reply", reply).Msg("unable to parse readiness score")
	}

	if err = s.repo.UpdateReadinessScore(id, score, s.timestamp()); err != nil {
		return nil, err
	}

	return score, nil
}

// ParseReadinessScore takes the first integer of the reply and clamps it to 0..100
func ParseReadinessScore(reply string) *int {
	match := digitsRe.FindString(reply)
	if match == "" {
		return nil
	}

	score, err := strconv.Atoi(match)
	if err != nil {
		// only overflow is possible for a digits-only string
		score = maxReadinessScore
	}

	score = max(minReadinessScore, min(maxReadinessScore, score))

	return &score
}

func (s *Service) load(id int64) (*Startup, error) {
	if id <= 0 {
		return nil, ErrMissingStartupID
	}

	st, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: #%d", ErrStartupNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch startup data: %w", err)
	}

	return st, nil
}
