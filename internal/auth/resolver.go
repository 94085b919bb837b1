package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rise-platform/rise-edge/pkg/sdk/supabase"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingToken = errors.New("missing authorization header")
	ErrInvalidToken = errors.New("authentication failed")
)

type UserProvider interface {
	GetUser(ctx context.Context, jwt string) (*supabase.User, error)
}

type Resolver struct {
	users UserProvider
}

func NewResolver(up UserProvider) *Resolver {
	return &Resolver{
		users: up,
	}
}

// Resolve returns user id by the value of Authorization header
func (r *Resolver) Resolve(ctx context.Context, header string) (uuid.UUID, error) {
	token, err := extractToken(header)
	if err != nil {
		return uuid.Nil, err
	}

	user, err := r.users.GetUser(ctx, token)
	if errors.Is(err, supabase.ErrUnauthorized) {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get user: %w", err)
	}

	id, err := uuid.Parse(user.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: parse user id: %w", ErrInvalidToken, err)
	}

	return id, nil
}

func extractToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return "", fmt.Errorf("%w: not a bearer token", ErrInvalidToken)
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
