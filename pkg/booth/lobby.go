package booth

import (
	"sync"
	"time"

	"github.com/duosnap/booth/pkg/api"
	"github.com/duosnap/booth/pkg/com"
	"github.com/duosnap/booth/pkg/logger"
	"github.com/goccy/go-json"
)

// Messenger is the narrow side of a connected client the lobby talks to.
type Messenger interface {
	Id() com.Uid
	Notify(t api.PT, payload any)
}

// Lobby is the single authority over all live rooms.
//
// Every operation that reads-then-writes room state runs under one lock,
// keeping the 2-member cap and the timer arm/disarm transitions atomic.
// No I/O happens inside the critical section: outbound notifications are
// collected under the lock and dispatched after it is released, through
// the members' async send queues.
type Lobby struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	session time.Duration
	log     *logger.Logger
}

func NewLobby(session time.Duration, log *logger.Logger) *Lobby {
	return &Lobby{
		rooms:   make(map[string]*Room, 10),
		session: session,
		log:     log,
	}
}

// Create allocates a fresh room with m as its first member and tells m
// the new room id.
func (l *Lobby) Create(m Messenger) string {
	l.mu.Lock()
	id := com.NewUid().String()
	for _, taken := l.rooms[id]; taken; _, taken = l.rooms[id] {
		id = com.NewUid().String()
	}
	l.rooms[id] = &Room{id: id, members: []Messenger{m}}
	l.mu.Unlock()

	roomsCreated.Inc()
	activeRooms.Inc()
	l.log.Info().Str("rid", id).Msg("Room created")
	m.Notify(api.RoomCreated, api.RoomCreatedPayload{Rid: id})
	return id
}

// Join adds m to the room. The third joiner and a repeated join by an
// existing member are rejected without touching room state. Joining the
// second member pairs the room and notifies both sides.
func (l *Lobby) Join(rid string, m Messenger) JoinResult {
	l.mu.Lock()
	room, ok := l.rooms[rid]
	if !ok {
		l.mu.Unlock()
		m.Notify(api.RoomNotFound, api.Room{Rid: rid})
		return RoomNotFound
	}
	if room.full() || room.has(m.Id()) {
		l.mu.Unlock()
		m.Notify(api.RoomFull, api.Room{Rid: rid})
		return RoomFull
	}
	room.members = append(room.members, m)
	paired := room.full()
	var both []Messenger
	if paired {
		both = append(both, room.members...)
	}
	l.mu.Unlock()

	if !paired {
		return Waiting
	}
	l.log.Info().Str("rid", rid).Msg("Room paired")
	for _, t := range both {
		t.Notify(api.PartnerConnected, api.Room{Rid: rid})
	}
	return Paired
}

// StartSession flips the room into its active phase and arms the expiry
// timer once. Returns false for unknown rooms, unpaired rooms and rooms
// whose session is already running, so a second call can never restart
// or extend the timer.
func (l *Lobby) StartSession(rid string) bool {
	l.mu.Lock()
	room, ok := l.rooms[rid]
	if !ok || room.started || !room.full() {
		l.mu.Unlock()
		return false
	}
	room.started = true
	room.timer = time.AfterFunc(l.session, func() { l.expire(rid) })
	both := append([]Messenger{}, room.members...)
	l.mu.Unlock()

	l.log.Info().Str("rid", rid).Msgf("Session started, expires in %v", l.session)
	for _, t := range both {
		t.Notify(api.SessionStarted, api.Room{Rid: rid})
	}
	return true
}

// expire fires when a session timer goes off. The room is re-checked
// under the lock: a leave racing with the timer wins by removing the
// room first, which turns this call into a no-op.
func (l *Lobby) expire(rid string) {
	l.mu.Lock()
	room, ok := l.rooms[rid]
	if !ok || room.closed {
		l.mu.Unlock()
		return
	}
	members := append([]Messenger{}, room.members...)
	l.close(room, "expired")
	l.mu.Unlock()

	l.log.Info().Str("rid", rid).Msg("Session expired")
	for _, t := range members {
		t.Notify(api.SessionExpired, api.Room{Rid: rid})
	}
}

// Leave removes m from the room and tears the room down: a departure
// ends the session for everyone. Pending timers are cancelled before
// the room goes away so they can never fire against it afterwards.
func (l *Lobby) Leave(rid string, m Messenger) {
	l.mu.Lock()
	room, ok := l.rooms[rid]
	if !ok || room.closed || !room.has(m.Id()) {
		l.mu.Unlock()
		return
	}
	rest := room.membersExcept(m.Id())
	l.close(room, "disconnected")
	l.mu.Unlock()

	l.log.Info().Str("rid", rid).Str("cid", m.Id().Short()).Msg("Member left, room closed")
	for _, t := range rest {
		t.Notify(api.PartnerDisconnected, api.Room{Rid: rid})
	}
}

// Drop handles a terminal transport disconnect: m leaves every room
// it is a member of.
func (l *Lobby) Drop(m Messenger) {
	type farewell struct {
		rid  string
		rest []Messenger
	}
	l.mu.Lock()
	var found []farewell
	for rid, room := range l.rooms {
		if room.has(m.Id()) {
			found = append(found, farewell{rid: rid, rest: room.membersExcept(m.Id())})
			l.close(room, "disconnected")
		}
	}
	l.mu.Unlock()

	for _, f := range found {
		l.log.Info().Str("rid", f.rid).Str("cid", m.Id().Short()).Msg("Member disconnected, room closed")
		for _, t := range f.rest {
			t.Notify(api.PartnerDisconnected, api.Room{Rid: f.rid})
		}
	}
}

// Relay forwards an opaque signaling payload to the one other member of
// the room, verbatim and with the same packet type. Messages for unknown
// rooms, from non-members, or without a partner present are dropped
// silently.
func (l *Lobby) Relay(rid string, sender Messenger, t api.PT, payload json.RawMessage) bool {
	l.mu.Lock()
	room, ok := l.rooms[rid]
	if !ok || !room.has(sender.Id()) {
		l.mu.Unlock()
		return false
	}
	to := room.other(sender.Id())
	l.mu.Unlock()

	if to == nil {
		return false
	}
	signalsRelayed.Inc()
	to.Notify(t, payload)
	return true
}

// HasRoom reports whether a room is live.
func (l *Lobby) HasRoom(rid string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.rooms[rid]
	return ok
}

// RoomCount returns the number of live rooms.
func (l *Lobby) RoomCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rooms)
}

// close destroys the room: disarms its timer and removes it from the
// table. Idempotent, the caller must hold the lobby lock.
func (l *Lobby) close(room *Room, reason string) {
	if room.closed {
		return
	}
	room.stopTimer()
	room.closed = true
	delete(l.rooms, room.id)
	activeRooms.Dec()
	roomsClosed.WithLabelValues(reason).Inc()
}
