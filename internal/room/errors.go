package room

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindPreconditionNotMet
	KindNotInRoom
	KindInvalidOffer
	KindConflictingState
	KindInputValidation
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindPreconditionNotMet:
		return "precondition_not_met"
	case KindNotInRoom:
		return "not_in_room"
	case KindInvalidOffer:
		return "invalid_offer"
	case KindConflictingState:
		return "conflicting_state"
	case KindInputValidation:
		return "input_validation"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Error is a caller-facing failure. Message is sent to the client as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

var (
	ErrGameNotStarted = &Error{KindPreconditionNotMet, "Game has not started yet"}

	ErrNotInRoom = &Error{KindNotInRoom, "You are not in a room"}

	ErrOfferedNotOwned   = &Error{KindInvalidOffer, "You do not own all offered items"}
	ErrRequestedNotOwned = &Error{KindInvalidOffer, "The other player does not own all requested items"}
	ErrOfferInvalidated  = &Error{KindInvalidOffer, "Offer is no longer valid"}

	ErrAlreadyJoined  = &Error{KindConflictingState, "You have already joined a room"}
	ErrOfferExists    = &Error{KindConflictingState, "An offer already exists"}
	ErrNoOfferCancel  = &Error{KindConflictingState, "No active offer to cancel"}
	ErrNoOfferRespond = &Error{KindConflictingState, "No active offer to respond to"}

	ErrNicknameEmpty   = &Error{KindInputValidation, "Nickname cannot be empty"}
	ErrNicknameTooLong = &Error{KindInputValidation, "Nickname is too long (max 32 characters)"}
	ErrMessageEmpty    = &Error{KindInputValidation, "Message cannot be empty"}
	ErrMessageTooLong  = &Error{KindInputValidation, "Message is too long (max 500 characters)"}

	ErrChatRateLimited = &Error{KindRateLimited, "You are sending messages too quickly"}
)
