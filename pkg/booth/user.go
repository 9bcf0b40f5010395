package booth

import (
	"github.com/duosnap/booth/pkg/api"
	"github.com/duosnap/booth/pkg/com"
	"github.com/duosnap/booth/pkg/logger"
	"github.com/goccy/go-json"
)

// User is one connected client over a websocket.
type User struct {
	id   com.Uid
	wire *com.WS
	log  *logger.Logger
}

func NewUser(conn *com.WS, log *logger.Logger) *User {
	id := com.NewUid()
	return &User{
		id:   id,
		wire: conn,
		log:  log.Extend(log.With().Str("cid", id.Short())),
	}
}

func (u *User) Id() com.Uid { return u.id }

func (u *User) Disconnect() { u.wire.Close() }

// Notify queues a packet for the user without waiting for delivery.
func (u *User) Notify(t api.PT, payload any) {
	u.log.Debug().Str(logger.DirectionField, "→").Msgf("%v", t)
	r, err := json.Marshal(api.Out{T: t, Payload: payload})
	if err != nil {
		u.log.Error().Err(err).Msg("packet encode fail")
		return
	}
	u.wire.Write(r)
}

// OnPacket sets the decoded packet handler for the connection.
func (u *User) OnPacket(fn func(in api.In)) {
	u.wire.OnMessage = func(message []byte, err error) {
		if err != nil {
			return
		}
		var in api.In
		if err := json.Unmarshal(message, &in); err != nil {
			u.log.Error().Err(err).Msg("malformed packet")
			return
		}
		u.log.Debug().Str(logger.DirectionField, "←").Msgf("%v", in.T)
		fn(in)
	}
}

// Listen blocks pumping the user's connection until it terminates.
func (u *User) Listen() { u.wire.Listen() }

func (u *User) String() string { return u.id.String() }
