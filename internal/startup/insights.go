package startup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rise-platform/rise-edge/internal/ai"
)

const (
	insightsTemperature = 0.6
	insightsMaxTokens   = 300
)

// GenerateInsights stores investor considerations for the startup, nil when the provider returns nothing
func (s *Service) GenerateInsights(ctx context.Context, id int64) (*string, error) {
	st, err := s.load(id)
	if err != nil {
		return nil, err
	}

	req := ai.Prompt(BuildInsightsPrompt(st), insightsTemperature)
	req.MaxTokens = insightsMaxTokens

	reply, err := s.ai.Complete(context.WithoutCancel(ctx), req)
	if err != nil && !errors.Is(err, ai.ErrEmptyReply) {
		return nil, fmt.Errorf("generate insights: %w", err)
	}

	var insights *string
	if reply = strings.TrimSpace(reply); reply != "" {
		insights = &reply
	} else {
		log.Warn().Int64("startup_id", id).Msg("provider returned no insights")
	}

	if err = s.repo.UpdateInsights(id, insights, s.timestamp()); err != nil {
		return nil, err
	}

	return insights, nil
}
