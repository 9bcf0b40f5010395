package booth

import (
	"net/http"

	"github.com/duosnap/booth/pkg/api"
	"github.com/duosnap/booth/pkg/com"
	"github.com/duosnap/booth/pkg/logger"
)

// Hub owns the connection registry and routes decoded packets from
// each user into the lobby.
type Hub struct {
	lobby *Lobby
	users com.NetMap[com.Uid, *User]
	log   *logger.Logger
}

func NewHub(lobby *Lobby, log *logger.Logger) *Hub {
	return &Hub{lobby: lobby, users: com.NewNetMap[com.Uid, *User](), log: log}
}

// handleUserConnection handles a websocket connection for its whole
// lifetime: register, dispatch, and the terminal disconnect cleanup.
func (h *Hub) handleUserConnection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := com.NewServer(w, r, h.log)
		if err != nil {
			h.log.Error().Err(err).Msg("socket upgrade fail")
			return
		}
		usr := NewUser(conn, h.log)
		usr.log.Debug().Msg("Connect")
		h.users.Add(usr)
		defer h.users.Remove(usr)

		h.route(usr)
		usr.Listen()

		// the read pump exit is the one and only disconnect signal
		h.lobby.Drop(usr)
		usr.log.Debug().Msg("Disconnect")
	}
}

// route decodes incoming packets into lobby calls.
func (h *Hub) route(u *User) {
	u.OnPacket(func(in api.In) {
		switch in.T {
		case api.CreateRoom:
			h.lobby.Create(u)
		case api.JoinRoom:
			rq := api.Unwrap[api.Room](in.Payload)
			if rq == nil {
				u.log.Error().Msg("malformed join payload")
				return
			}
			h.lobby.Join(rq.Rid, u)
		case api.StartSession:
			rq := api.Unwrap[api.Room](in.Payload)
			if rq == nil {
				u.log.Error().Msg("malformed start payload")
				return
			}
			h.lobby.StartSession(rq.Rid)
		case api.Offer, api.Answer, api.IceCandidate:
			// payload stays opaque, only the address matters
			rq := api.Unwrap[api.Signal](in.Payload)
			if rq == nil {
				u.log.Error().Msg("malformed signal payload")
				return
			}
			h.lobby.Relay(rq.Rid, u, in.T, in.Payload)
		default:
			u.log.Warn().Msgf("unknown packet %v", in.T)
		}
	})
}

// UserCount returns the number of registered live connections.
func (h *Hub) UserCount() int { return h.users.Len() }
