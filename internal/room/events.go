package room

import "github.com/bongibault-romain/trading-game-server/internal/shared"

// Outbound event names.
const (
	EventJoinedRoom     = "joinedRoom"
	EventGameStarting   = "gameStarting"
	EventChatMessage    = "chatMessage"
	EventNewOffer       = "newOffer"
	EventOfferCancelled = "offerCancelled"
	EventOfferAccepted  = "offerAccepted"
	EventRoomClosed     = "roomClosed"
)

type JoinedRoom struct {
	RoomID string         `json:"roomId"`
	Player *shared.Player `json:"player"`
}

type GameStarting struct {
	Players []*shared.Player `json:"players"`
}

type ChatMessage struct {
	SenderID  string `json:"senderId"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type NewOffer struct {
	Offer *shared.Offer `json:"offer"`
}

// OfferAccepted carries both final inventories: OfferedInventory belongs to
// the proposer, ReceivedInventory to the player who accepted.
type OfferAccepted struct {
	OfferingPlayerID  string        `json:"offeringPlayerId"`
	ReceivingPlayerID string        `json:"receivingPlayerId"`
	OfferedInventory  []shared.Item `json:"offeredInventory"`
	ReceivedInventory []shared.Item `json:"receivedInventory"`
}

type RoomClosed struct {
	RoomID string `json:"roomId"`
}

// Summary is the read-only view of a room served by the HTTP API.
type Summary struct {
	ID       string `json:"id"`
	State    string `json:"state"`
	Players  int    `json:"players"`
	HasOffer bool   `json:"hasOffer"`
}
