package realtime

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/rise-platform/rise-edge/internal/metrics"
)

const websocketPath = "/realtime/v1/websocket"

type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewServer(hub *Hub, allowedOrigin string) *Server {
	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

func (s *Server) Register(r *mux.Router) {
	r.HandleFunc(websocketPath, s.serveWs).Methods(http.MethodGet)
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("upgrade realtime connection")
		return
	}

	c := newClient(s.hub, conn)
	metrics.RealtimeClientsGauge.Inc()

	go c.writePump()
	go c.readPump()
}
