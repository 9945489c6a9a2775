package ws

import "github.com/bongibault-romain/trading-game-server/internal/shared"

type RoomManager interface {
	Join(connID, nickname string) (string, shared.Player, error)
	SendChat(connID, message string) error
	SubmitOffer(connID string, offeredIDs, requestedIDs []string) error
	CancelOffer(connID string) error
	AnswerOffer(connID string, accept bool) error
	Disconnect(connID string)
}
