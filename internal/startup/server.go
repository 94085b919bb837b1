package startup

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/rise-platform/rise-edge/internal/api"
)

const (
	eventInsert  = "INSERT"
	tableStartup = "startups"
)

type Analyzer interface {
	RequestAnalysis(ctx context.Context, id int64) error
	RequestFinetunedAnalysis(ctx context.Context, id int64) error
	CalculateReadiness(ctx context.Context, id int64) (*int, error)
	GenerateInsights(ctx context.Context, id int64) (*string, error)
}

type Server struct {
	sp Analyzer
}

func NewServer(sp Analyzer) *Server {
	return &Server{
		sp: sp,
	}
}

func (s *Server) Register(r *mux.Router) {
	r.HandleFunc(api.FunctionsPrefix+"/request-analysis", s.requestAnalysis).Methods(http.MethodPost)
	r.HandleFunc(api.FunctionsPrefix+"/request-analysis-finetuned", s.requestFinetunedAnalysis).Methods(http.MethodPost)
	r.HandleFunc(api.FunctionsPrefix+"/analyze-startup", s.analyzeStartup).Methods(http.MethodPost)
	r.HandleFunc(api.FunctionsPrefix+"/calculate-readiness-score", s.calculateReadiness).Methods(http.MethodPost)
	r.HandleFunc(api.FunctionsPrefix+"/generate-ai-insights", s.generateInsights).Methods(http.MethodPost)
}

type analysisRequest struct {
	StartupID int64 `json:"startup_id"`
}

type webhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) requestAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.runAnalysis(w, r, req.StartupID)
}

func (s *Server) requestFinetunedAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := api.DecodeJSON(r, &req); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.sp.RequestFinetunedAnalysis(r.Context(), req.StartupID); err != nil {
		api.WriteError(w, errorCode(err), err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Analysis completed successfully"})
}

func (s *Server) analyzeStartup(w http.ResponseWriter, r *http.Request) {
	var payload WebhookPayload
	if err := api.DecodeJSON(r, &payload); err != nil {
		api.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if payload.Type != eventInsert || payload.Table != tableStartup {
		log.Debug().Str("type", payload.Type).Str("table", payload.Table).Msg("ignoring webhook event")
		api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Ignoring event"})
		return
	}

	s.runAnalysis(w, r, payload.StartupID())
}

func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.sp.RequestAnalysis(r.Context(), id); err != nil {
		api.WriteError(w, errorCode(err), err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Analysis completed successfully"})
}

func (s *Server) calculateReadiness(w http.ResponseWriter, r *http.Request) {
	id, ok := webhookStartupID(w, r)
	if !ok {
		return
	}

	if _, err := s.sp.CalculateReadiness(r.Context(), id); err != nil {
		log.Error().Err(err).Int64("startup_id", id).Msg("calculate readiness score")
		api.WriteJSON(w, errorCode(err), webhookResponse{Error: err.Error()})
		return
	}

	api.WriteJSON(w, http.StatusOK, webhookResponse{
		Success: true,
		Message: fmt.Sprintf("Score calculated for startup %d", id),
	})
}

func (s *Server) generateInsights(w http.ResponseWriter, r *http.Request) {
	id, ok := webhookStartupID(w, r)
	if !ok {
		return
	}

	if _, err := s.sp.GenerateInsights(r.Context(), id); err != nil {
		log.Error().Err(err).Int64("startup_id", id).Msg("generate insights")
		api.WriteJSON(w, errorCode(err), webhookResponse{Error: err.Error()})
		return
	}

	api.WriteJSON(w, http.StatusOK, webhookResponse{
		Success: true,
		Message: fmt.Sprintf("Insights generated for startup %d", id),
	})
}

func webhookStartupID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var payload WebhookPayload
	if err := api.DecodeJSON(r, &payload); err != nil {
		api.WriteJSON(w, http.StatusBadRequest, webhookResponse{Error: err.Error()})
		return 0, false
	}

	id := payload.StartupID()
	if id <= 0 {
		api.WriteJSON(w, http.StatusBadRequest, webhookResponse{Error: "Invalid startup record data received."})
		return 0, false
	}

	return id, true
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, ErrMissingStartupID):
		return http.StatusBadRequest
	case errors.Is(err, ErrStartupNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAnalysisInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
