package booth

import (
	"time"

	"github.com/duosnap/booth/pkg/com"
)

// JoinResult is the outcome of a room join attempt.
type JoinResult uint8

const (
	Waiting JoinResult = iota
	Paired
	RoomNotFound
	RoomFull
)

func (r JoinResult) String() string {
	switch r {
	case Waiting:
		return "Waiting"
	case Paired:
		return "Paired"
	case RoomNotFound:
		return "RoomNotFound"
	case RoomFull:
		return "RoomFull"
	}
	return "Unknown"
}

const roomCapacity = 2

// Room pairs up to two members for one photo session.
//
// Rooms move Forming (1 member) -> Paired (2 members) -> Active (session
// started, expiry timer armed) -> Closed (removed from the lobby).
// Closed is terminal. All fields are guarded by the owning lobby's lock.
type Room struct {
	id      string
	members []Messenger // ordered, never more than roomCapacity
	started bool        // flips to true at most once
	timer   *time.Timer // expiry, at most one armed
	closed  bool
}

func (r *Room) full() bool { return len(r.members) >= roomCapacity }

func (r *Room) has(id com.Uid) bool {
	for _, m := range r.members {
		if m.Id() == id {
			return true
		}
	}
	return false
}

// other returns the one member that is not id, or nil when the room
// has no such member.
func (r *Room) other(id com.Uid) Messenger {
	for _, m := range r.members {
		if m.Id() != id {
			return m
		}
	}
	return nil
}

func (r *Room) membersExcept(id com.Uid) (rest []Messenger) {
	for _, m := range r.members {
		if m.Id() != id {
			rest = append(rest, m)
		}
	}
	return
}

// stopTimer disarms a pending expiry timer, if any.
func (r *Room) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
