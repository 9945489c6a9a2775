package ws

import "encoding/json"

// Inbound event names.
const (
	EventJoinGame    = "joinGame"
	EventChatMessage = "chatMessage"
	EventSubmitOffer = "submitOffer"
	EventCancelOffer = "cancelOffer"
	EventAnswerOffer = "answerOffer"

	// EventAck carries the reply to an inbound event that asked for one.
	EventAck = "ack"
)

const (
	errUnknownEvent   = "Unknown event"
	errInvalidPayload = "Invalid payload"
	errInternal       = "Internal error"
)

// inboundMessage is a client frame. Ack is set when the client wants a reply.
type inboundMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	Ack   *int64          `json:"ack,omitempty"`
}

type outboundMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	Ack   *int64 `json:"ack,omitempty"`
}

type ackPayload struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type joinGamePayload struct {
	Nickname string `json:"nickname"`
}

type chatMessagePayload struct {
	Message string `json:"message"`
}

type submitOfferPayload struct {
	OfferedItemIDs  []string `json:"offeredItemIds" validate:"omitempty,dive,required"`
	ReceivedItemIDs []string `json:"receivedItemIds" validate:"omitempty,dive,required"`
}

type answerOfferPayload struct {
	Accept *bool `json:"accept" validate:"required"`
}
