package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rise-platform/rise-edge/internal/config"
)

var (
	ErrEmptyReply    = errors.New("empty reply from provider")
	ErrMissingAPIKey = errors.New("missing provider api key")
)

type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// NewCompleter creates the client for the configured provider
func NewCompleter(ctx context.Context, cfg config.AI, apiKey string) (Completer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(apiKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.RequestTimeout), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, apiKey, cfg.GeminiModel, cfg.RequestTimeout)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// withoutSystem drops the system messages, the instruction is passed separately
func withoutSystem(list []Message) []Message {
	res := make([]Message, 0, len(list))
	for _, msg := range list {
		if msg.Role == RoleSystem {
			continue
		}

		res = append(res, msg)
	}

	return res
}

// Unavailable fails every call with Err, it stands in for a provider without credentials
type Unavailable struct {
	Err error
}

func (u Unavailable) Complete(context.Context, Request) (string, error) {
	return "", u.Err
}
