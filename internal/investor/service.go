package investor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rise-platform/rise-edge/internal/ai"
	"github.com/rise-platform/rise-edge/internal/startup"
)

const suggestionTemperature = 0.4

var ErrInvestorNotFound = errors.New("investor profile not found")

type DataProvider interface {
	GetByUserID(userID uuid.UUID) (*Investor, error)
}

type StartupProvider interface {
	Find(filters ...startup.Filter) ([]startup.Startup, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, header string) (uuid.UUID, error)
}

type Service struct {
	repo       DataProvider
	startups   StartupProvider
	identity   IdentityResolver
	ai         ai.Completer
	candidates int
}

func NewService(repo DataProvider, sp StartupProvider, ir IdentityResolver, completer ai.Completer, candidates int) *Service {
	return &Service{
		repo:       repo,
		startups:   sp,
		identity:   ir,
		ai:         completer,
		candidates: candidates,
	}
}

// Suggest ranks startups matching the preferences of the investor behind the token
func (s *Service) Suggest(ctx context.Context, authHeader string) ([]Suggestion, error) {
	userID, err := s.identity.Resolve(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	inv, err := s.repo.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvestorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch investor profile: %w", err)
	}

	list, err := s.startups.Find(
		startup.StageFilter{Stages: inv.PreferredStage},
		startup.IndustryFilter{Industries: inv.PreferredIndustries},
		startup.CountryFilter{Countries: inv.PreferredGeography},
		startup.OrderByIDFilter{},
		startup.PageFilter{Limit: s.candidates},
	)
	if err != nil {
		return nil, fmt.Errorf("fetch startups: %w", err)
	}

	if len(list) == 0 {
		log.Info().Str("user_id", userID.String()).Msg("no startups match investor preferences")

		return []Suggestion{}, nil
	}

	req := ai.Prompt(BuildSuggestionPrompt(inv, list), suggestionTemperature)
	req.JSON = true
	req.JSONArray = true

	reply, err := s.ai.Complete(context.WithoutCancel(ctx), req)
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}

	suggestions, err := ParseSuggestions(reply)
	if err != nil {
		log.Warn().Err(err).Str("reply", reply).Msg("unable to parse suggestions")

		return nil, err
	}

	return suggestions, nil
}
