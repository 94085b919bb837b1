package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const checkTimeout = 3 * time.Second

// Checker reports whether a dependency is usable
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type Status struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func NewHealthCheckServer(listen, path string, handler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	return &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// DefaultHandler answers 200 when every checker passes and 503 otherwise
func DefaultHandler(checkers ...Checker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		res := Status{Status: "ok", Checks: make(map[string]string, len(checkers))}
		code := http.StatusOK
		for _, c := range checkers {
			if err := c.Check(ctx); err != nil {
				log.Warn().Err(err).Str("check", c.Name()).Msg("health check failed")
				res.Checks[c.Name()] = err.Error()
				res.Status = "unavailable"
				code = http.StatusServiceUnavailable
				continue
			}
			res.Checks[c.Name()] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(res)
	})
}

// PingFunc adapts a ping function, such as (*sql.DB).PingContext, to Checker
type PingFunc struct {
	Target string
	Ping   func(ctx context.Context) error
}

func (p PingFunc) Name() string {
	return p.Target
}

func (p PingFunc) Check(ctx context.Context) error {
	return p.Ping(ctx)
}
