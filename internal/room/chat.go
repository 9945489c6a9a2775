package room

import (
	"strings"
	"unicode/utf8"
)

const maxMessageLength = 500

// SendChat relays a message to the caller's room. Timestamps are Unix
// milliseconds and never go backwards within a room.
func (m *Manager) SendChat(connID, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p, err := m.activePlayer(connID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return ErrMessageEmpty
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return ErrMessageTooLong
	}

	now := m.now()
	if !m.chatLimiter.Allow(p.ID, now) {
		return ErrChatRateLimited
	}
	if now.Before(r.LastChatAt) {
		now = r.LastChatAt
	}
	r.LastChatAt = now

	m.transport.Broadcast(r.ID, EventChatMessage, ChatMessage{
		SenderID:  p.ID,
		Content:   message,
		Timestamp: now.UnixMilli(),
	})
	m.metrics.ChatMessage()
	m.logger.Debug("chat message", "room_id", r.ID, "player_id", p.ID, "length", len(message))
	return nil
}
