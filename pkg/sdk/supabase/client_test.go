package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnitGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/user", r.URL.Path)
		require.Equal(t, "service-key", r.Header.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			_, _ = w.Write([]byte(`{"id":"8f6ad6a8-9f1c-4c45-9d8c-2f1b8642f4a1","email":"founder@example.com"}`))
		case "Bearer broken":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"msg":"boom"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "service-key", time.Second, http.DefaultTransport)

	t.Run("valid token", func(t *testing.T) {
		user, err := client.GetUser(context.Background(), "good")
		require.NoError(t, err)
		require.Equal(t, "8f6ad6a8-9f1c-4c45-9d8c-2f1b8642f4a1", user.ID)
		require.Equal(t, "founder@example.com", user.Email)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := client.GetUser(context.Background(), "bad")
		require.ErrorIs(t, err, ErrUnauthorized)
		require.Contains(t, err.Error(), "invalid JWT")
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.GetUser(context.Background(), "broken")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrUnauthorized)
	})
}
