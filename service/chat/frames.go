package chat

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Inbound event names (client -> server).
const (
	EventJoinRoom    = "joinRoom"
	EventSendMessage = "sendMessage"
	EventSeenByAdmin = "seenByAdmin"
)

// Outbound event names (server -> client).
const (
	EventNewOrder       = "new-order"
	EventReceiveMessage = "receiveMessage"
)

// Frame is the wire format for both directions: an event name plus a raw
// JSON payload interpreted per event.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func ParseFrameJSON(raw []byte) (*Frame, error) {
	f := &Frame{}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, errors.Wrap(err, "unmarshal frame failed")
	}
	if f.Event == "" {
		return nil, errors.New("frame missing event")
	}
	return f, nil
}

// EncodeFrameJSON builds an outbound frame for the given event/payload.
func EncodeFrameJSON(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal payload for event=%s failed", event)
	}
	return json.Marshal(&Frame{Event: event, Data: data})
}

// MessagePayload mirrors the chat message shape the frontend sends with
// sendMessage. Routing uses only Receiver; the rest passes through verbatim.
type MessagePayload struct {
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// SeenPayload is the seenByAdmin payload, routed to room User.
type SeenPayload struct {
	User string `json:"user"`
}
