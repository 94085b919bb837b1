package assistant

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/rise-platform/rise-edge/internal/ai"
	"github.com/rise-platform/rise-edge/internal/api"
)

const (
	invalidMessagesText = "Invalid request. 'messages' array with at least one message is required."
	replyFailedText     = "An error occurred while processing your request."
)

type Replier interface {
	Reply(ctx context.Context, req ReplyRequest) (string, error)
}

type Server struct {
	rp Replier
}

func NewServer(rp Replier) *Server {
	return &Server{
		rp: rp,
	}
}

func (s *Server) Register(r *mux.Router) {
	r.HandleFunc(api.FunctionsPrefix+"/ai-assistant", s.reply).Methods(http.MethodPost)
}

type replyBody struct {
	Messages []ai.Message `json:"messages"`
}

func (s *Server) reply(w http.ResponseWriter, r *http.Request) {
	var body replyBody
	if err := api.DecodeJSON(r, &body); err != nil {
		api.WriteError(w, http.StatusBadRequest, invalidMessagesText)
		return
	}

	reply, err := s.rp.Reply(r.Context(), ReplyRequest{
		AuthHeader: r.Header.Get("Authorization"),
		Messages:   body.Messages,
	})
	if errors.Is(err, ErrInvalidMessages) {
		api.WriteError(w, http.StatusBadRequest, invalidMessagesText)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("ai assistant reply")
		api.WriteJSON(w, http.StatusInternalServerError, api.ErrorResponse{
			Error:   replyFailedText,
			Details: err.Error(),
		})
		return
	}

	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: reply})
}
