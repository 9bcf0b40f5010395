// Package api defines the wire API between the booth server and its clients.
//
// Each message is a JSON-encoded "packet" of the following structure:
//
//	t - (required) one of the predefined unique packet types;
//	p - (optional) packet payload with arbitrary data.
//
// The packets differentiate by their predefined types with which it is
// possible to unwrap the payload into distinct request/response data
// structures. Signaling payloads (offer/answer/ice-candidate) are opaque:
// the server forwards them verbatim and never inspects their contents.
//
// Example:
//
//	{"t":20,"p":{"room_id":"cfv68irdrc3ifu3jn6bg","data":{"type":"offer","sdp":"..."}}}
package api

import "github.com/goccy/go-json"

type PT uint8

// Packet codes:
//
//	1x - room lifecycle requests
//	2x - signaling relay (same code goes out to the partner)
//	4x - server events
const (
	CreateRoom   PT = 10
	JoinRoom     PT = 11
	StartSession PT = 12

	Offer        PT = 20
	Answer       PT = 21
	IceCandidate PT = 22

	RoomCreated         PT = 40
	RoomFull            PT = 41
	RoomNotFound        PT = 42
	PartnerConnected    PT = 43
	SessionStarted      PT = 44
	SessionExpired      PT = 45
	PartnerDisconnected PT = 46
)

func (p PT) String() string {
	switch p {
	case CreateRoom:
		return "CreateRoom"
	case JoinRoom:
		return "JoinRoom"
	case StartSession:
		return "StartSession"
	case Offer:
		return "Offer"
	case Answer:
		return "Answer"
	case IceCandidate:
		return "IceCandidate"
	case RoomCreated:
		return "RoomCreated"
	case RoomFull:
		return "RoomFull"
	case RoomNotFound:
		return "RoomNotFound"
	case PartnerConnected:
		return "PartnerConnected"
	case SessionStarted:
		return "SessionStarted"
	case SessionExpired:
		return "SessionExpired"
	case PartnerDisconnected:
		return "PartnerDisconnected"
	default:
		return "Unknown"
	}
}

// IsSignal reports whether the packet type is an opaque signaling
// message to be relayed to the other room member as-is.
func (p PT) IsSignal() bool { return p == Offer || p == Answer || p == IceCandidate }

type In struct {
	T       PT              `json:"t"`
	Payload json.RawMessage `json:"p,omitempty"` // kept raw for 2-pass unmarshal
}

type Out struct {
	T       PT  `json:"t"`
	Payload any `json:"p,omitempty"`
}

// Room is the payload of every room-scoped request.
type Room struct {
	Rid string `json:"room_id"`
}

// Signal carries an opaque signaling payload addressed to a room.
type Signal struct {
	Room
	Data json.RawMessage `json:"data,omitempty"`
}

// RoomCreatedPayload is sent back to the creator of a fresh room.
type RoomCreatedPayload struct {
	Rid string `json:"room_id"`
}

func Unwrap[T any](data []byte) *T {
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil
	}
	return out
}
