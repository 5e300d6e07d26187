package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/muster/muster/internal/core/domain"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: only for dev
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSClient wraps one websocket connection. Writes are serialized:
// broadcasts arrive from other connections' goroutines and gorilla
// allows only a single concurrent writer.
type WSClient struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *WSClient) ID() string {
	return c.id
}

func (c *WSClient) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}

// HTTP handler
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error while upgrading ws")
		return
	}
	if h.ReadLimit > 0 {
		conn.SetReadLimit(h.ReadLimit)
	}

	l := log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	l.Info().Msg("New client connected")

	// Identity is established only by the first register frame.
	var client *WSClient

	defer func() {
		if client != nil {
			h.Coordinator.Disconnect(client.ID(), client)
		}
		l.Info().Msg("Client disconnected")
		conn.Close()
	}()

	// listening for browser
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				l.Error().Err(err).Msg("Unexpected close error")
			}
			break
		}

		var env domain.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			l.Debug().Err(err).Msg("Dropped undecodable frame")
			continue
		}

		if env.Type == domain.TypeRegister {
			if client != nil {
				l.Warn().Str("client_id", client.ID()).Msg("Dropped re-register on live connection")
				continue
			}
			if env.ID == "" {
				l.Debug().Msg("Dropped register without id")
				continue
			}
			client = &WSClient{id: env.ID, conn: conn}
			h.Coordinator.Register(client.ID(), client)
			l = l.With().Str("client_id", client.ID()).Logger()
			continue
		}

		if client == nil {
			l.Debug().Str("type", env.Type).Msg("Dropped message before register")
			continue
		}

		switch {
		case env.Type == domain.TypeCreateCall:
			h.Coordinator.CreateCall(client.ID())
		case env.Type == domain.TypeJoinCall:
			h.Coordinator.JoinCall(client.ID(), domain.CallID(env.CallID))
		case domain.IsRelay(env.Type):
			h.Coordinator.Relay(env.Type, client.ID(), env.Target, env.Data)
		case env.Type == domain.TypeGetPeers:
			h.Coordinator.ListPeers(client.ID())
		case env.Type == domain.TypeGetCallParticipants:
			h.Coordinator.CallParticipants(client.ID())
		default:
			l.Debug().Str("type", env.Type).Msg("Unknown message type")
		}
	}
}
