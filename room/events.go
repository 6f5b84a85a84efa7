/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package room

import (
	"encoding/json"
	"fmt"
)

// Inbound event types (client -> server).
const (
	EventJoin        = "join"
	EventChatMessage = "chatMessage"
	EventStartGame   = "startGame"
	EventWordChosen  = "wordChosen"
	EventDrawBuffer  = "drawBuffer"
	EventFill        = "fill"
	EventClearCanvas = "clearCanvas"
	EventDisconnect  = "disconnect"

	eventTurnTimeout = "turnTimeout"
	eventStatus      = "status"
)

// Outbound event types (server -> client).
const (
	EventYouAreAdmin       = "youAreAdmin"
	EventPlayerJoined      = "playerJoined"
	EventPlayerLeft        = "playerLeft"
	EventPlayersUpdate     = "playersUpdate"
	EventSetDrawer         = "setDrawer"
	EventDrawerChoosing    = "drawerChoosing"
	EventWordOptions       = "wordOptions"
	EventWordChosenConfirm = "wordChosenConfirm"
	EventWordMask          = "wordMask"
	EventRejected          = "rejected"
)

const (
	defaultUsername = "Player"
	waitingStatus   = "Waiting for next drawer..."
	maskGlyph       = "_"
)

// Envelope is the JSON frame used on the wire in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message is an outbound event. Data is marshalled as-is.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// PlayerEntry is one element of a playersUpdate snapshot.
type PlayerEntry struct {
	Username string `json:"username"`
}

type ChatPayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type RejectedPayload struct {
	Event  string `json:"event"`
	Reason string `json:"reason"`
}

// Event is a single inbound action attributed to a connection.
type Event struct {
	Type    string
	Conn    string
	Text    string
	Payload json.RawMessage

	round uint64
	reply chan Status
}

// ParseEvent converts a wire envelope received on conn into an Event.
func ParseEvent(conn string, env Envelope) (Event, error) {
	ev := Event{Type: env.Type, Conn: conn}

	switch env.Type {
	case EventJoin, EventChatMessage, EventWordChosen:
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, &ev.Text); err != nil {
				return Event{}, fmt.Errorf("%s: payload must be a string: %w", env.Type, err)
			}
		}
	case EventDrawBuffer, EventFill, EventClearCanvas:
		ev.Payload = env.Data
	case EventStartGame:
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}

	return ev, nil
}
