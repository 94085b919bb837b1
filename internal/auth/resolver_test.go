package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rise-platform/rise-edge/pkg/sdk/supabase"
)

var errAuthDown = errors.New("unexpected status 503: upstream unavailable")

type usersStub map[string]string

func (s usersStub) GetUser(_ context.Context, jwt string) (*supabase.User, error) {
	if jwt == "outage" {
		return nil, errAuthDown
	}

	id, ok := s[jwt]
	if !ok {
		return nil, fmt.Errorf("%w: invalid JWT", supabase.ErrUnauthorized)
	}

	return &supabase.User{ID: id}, nil
}

func TestUnitResolve(t *testing.T) {
	userID := uuid.New()
	r := NewResolver(usersStub{
		"good":    userID.String(),
		"garbage": "not-a-uuid",
	})

	for name, tc := range map[string]struct {
		header   string
		expected uuid.UUID
		err      error
	}{
		"valid":         {header: "Bearer good", expected: userID},
		"empty":         {header: "", err: ErrMissingToken},
		"empty bearer":  {header: "Bearer  ", err: ErrMissingToken},
		"basic scheme":  {header: "Basic Zm9vOmJhcg==", err: ErrInvalidToken},
		"unknown token": {header: "Bearer bad", err: ErrInvalidToken},
		"bad user id":   {header: "Bearer garbage", err: ErrInvalidToken},
		"auth outage":   {header: "Bearer outage", err: errAuthDown},
	} {
		t.Run(name, func(t *testing.T) {
			id, err := r.Resolve(context.Background(), tc.header)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				if tc.err == errAuthDown {
					require.NotErrorIs(t, err, ErrInvalidToken)
				}
				require.Equal(t, uuid.Nil, id)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, id)
		})
	}
}
