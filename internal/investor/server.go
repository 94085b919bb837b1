package investor

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/rise-platform/rise-edge/internal/api"
	"github.com/rise-platform/rise-edge/internal/auth"
)

type Suggester interface {
	Suggest(ctx context.Context, authHeader string) ([]Suggestion, error)
}

type Server struct {
	sp Suggester
}

func NewServer(sp Suggester) *Server {
	return &Server{
		sp: sp,
	}
}

func (s *Server) Register(r *mux.Router) {
	r.HandleFunc(api.FunctionsPrefix+"/get-investor-suggestions", s.suggestions).Methods(http.MethodGet, http.MethodPost)
}

func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	list, err := s.sp.Suggest(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		log.Error().Err(err).Msg("get investor suggestions")
		api.WriteError(w, errorCode(err), err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, list)
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvestorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
