package room

import (
	"github.com/bongibault-romain/trading-game-server/internal/metrics"
	"github.com/bongibault-romain/trading-game-server/internal/shared"
)

// SubmitOffer proposes giving offeredIDs in exchange for requestedIDs owned by
// the other occupant. Repeated ids collapse; empty lists are allowed.
func (m *Manager) SubmitOffer(connID string, offeredIDs, requestedIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p, err := m.activePlayer(connID)
	if err != nil {
		return err
	}
	if r.Offer != nil {
		return ErrOfferExists
	}

	offered := shared.UniqueIDs(offeredIDs)
	requested := shared.UniqueIDs(requestedIDs)
	if !p.Owns(offered) {
		return ErrOfferedNotOwned
	}
	if !r.Opponent(p.ID).Owns(requested) {
		return ErrRequestedNotOwned
	}

	r.Offer = &shared.Offer{
		ProposerID:       p.ID,
		OfferedItemIDs:   offered,
		RequestedItemIDs: requested,
	}
	m.transport.Broadcast(r.ID, EventNewOffer, NewOffer{Offer: r.Offer})
	m.metrics.Offer(metrics.OfferSubmitted)
	m.logger.Info("offer submitted", "room_id", r.ID, "player_id", p.ID,
		"offered", len(offered), "requested", len(requested))
	return nil
}

// CancelOffer withdraws the caller's own pending offer.
func (m *Manager) CancelOffer(connID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p, err := m.activePlayer(connID)
	if err != nil {
		return err
	}
	if r.Offer == nil || r.Offer.ProposerID != p.ID {
		return ErrNoOfferCancel
	}

	m.clearOffer(r, metrics.OfferCancelled)
	m.logger.Info("offer cancelled", "room_id", r.ID, "player_id", p.ID)
	return nil
}

// AnswerOffer resolves the pending offer on behalf of the player who did not
// make it. Acceptance re-checks both inventories and applies the swap in the
// same critical section; a stale offer is dropped instead.
func (m *Manager) AnswerOffer(connID string, accept bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p, err := m.activePlayer(connID)
	if err != nil {
		return err
	}
	offer := r.Offer
	if offer == nil || offer.ProposerID == p.ID {
		return ErrNoOfferRespond
	}

	if !accept {
		m.clearOffer(r, metrics.OfferRejected)
		m.logger.Info("offer rejected", "room_id", r.ID, "player_id", p.ID)
		return nil
	}

	proposer := r.PlayerByID(offer.ProposerID)
	if proposer == nil || !proposer.Owns(offer.OfferedItemIDs) || !p.Owns(offer.RequestedItemIDs) {
		m.clearOffer(r, metrics.OfferInvalidated)
		m.logger.Warn("offer invalidated on accept", "room_id", r.ID, "player_id", p.ID)
		return ErrOfferInvalidated
	}

	p.Give(proposer.Take(offer.OfferedItemIDs))
	proposer.Give(p.Take(offer.RequestedItemIDs))
	r.Offer = nil

	m.transport.Broadcast(r.ID, EventOfferAccepted, OfferAccepted{
		OfferingPlayerID:  proposer.ID,
		ReceivingPlayerID: p.ID,
		OfferedInventory:  proposer.Inventory,
		ReceivedInventory: p.Inventory,
	})
	m.metrics.Offer(metrics.OfferAccepted)
	m.logger.Info("trade completed", "room_id", r.ID, "proposer_id", proposer.ID, "player_id", p.ID)
	return nil
}

func (m *Manager) clearOffer(r *shared.Room, outcome string) {
	r.Offer = nil
	m.transport.Broadcast(r.ID, EventOfferCancelled, nil)
	m.metrics.Offer(outcome)
}
