package room

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bongibault-romain/trading-game-server/internal/metrics"
	"github.com/bongibault-romain/trading-game-server/internal/ratelimit"
	"github.com/bongibault-romain/trading-game-server/internal/shared"
)

const maxNicknameLength = 32

type Store interface {
	SaveRoom(r *shared.Room)
	DeleteRoom(id string)
	Rooms() []*shared.Room
}

type InventoryGenerator interface {
	Generate() []shared.Item
}

// Manager owns every room mutation. All exported methods run under one lock,
// so handlers for the same room never interleave and each one completes
// (including its broadcasts) before the next starts.
type Manager struct {
	mu        sync.Mutex
	store     Store
	items     InventoryGenerator
	transport Transport

	chatLimiter *ratelimit.Limiter
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
}

type Option func(*Manager)

func WithChatLimiter(l *ratelimit.Limiter) Option {
	return func(m *Manager) { m.chatLimiter = l }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(s Store, items InventoryGenerator, t Transport, opts ...Option) *Manager {
	m := &Manager{
		store:     s,
		items:     items,
		transport: t,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Join places the connection's new player in the oldest room with a free seat,
// creating a room when none has one. The joiner is told its room and player;
// the whole room is told the game is starting when the second seat fills.
func (m *Manager) Join(connID, nickname string) (string, shared.Player, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", shared.Player{}, ErrNicknameEmpty
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return "", shared.Player{}, ErrNicknameTooLong
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if r, _ := m.findByConnection(connID); r != nil {
		return "", shared.Player{}, ErrAlreadyJoined
	}

	var r *shared.Room
	for _, candidate := range m.store.Rooms() {
		if len(candidate.Players) < shared.PlayersPerRoom {
			r = candidate
			break
		}
	}
	if r == nil {
		r = &shared.Room{ID: uuid.NewString()}
		m.store.SaveRoom(r)
		m.logger.Info("room created", "room_id", r.ID)
	}

	p := &shared.Player{
		ID:           uuid.NewString(),
		ConnectionID: connID,
		Nickname:     nickname,
		Inventory:    m.items.Generate(),
	}
	r.Players = append(r.Players, p)

	m.transport.Subscribe(connID, r.ID)
	m.transport.Emit(connID, EventJoinedRoom, JoinedRoom{RoomID: r.ID, Player: p})
	m.logger.Info("player joined", "room_id", r.ID, "player_id", p.ID, "conn_id", connID, "nickname", nickname)

	if len(r.Players) == shared.PlayersPerRoom {
		m.transport.Broadcast(r.ID, EventGameStarting, GameStarting{Players: r.Players})
		m.logger.Info("game starting", "room_id", r.ID)
	}
	m.recordRooms()

	out := *p
	out.Inventory = slices.Clone(p.Inventory)
	return r.ID, out, nil
}

// Disconnect tears down the room of the closing connection: every occupant is
// told the room closed and is disconnected, then the room is forgotten.
// Unknown connections are ignored.
func (m *Manager) Disconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, p := m.findByConnection(connID)
	if r == nil {
		return
	}

	for _, occupant := range r.Players {
		m.transport.Emit(occupant.ConnectionID, EventRoomClosed, RoomClosed{RoomID: r.ID})
		m.transport.Disconnect(occupant.ConnectionID)
		m.chatLimiter.Forget(occupant.ID)
	}
	r.Offer = nil
	m.store.DeleteRoom(r.ID)
	m.recordRooms()

	m.logger.Info("room closed", "room_id", r.ID, "player_id", p.ID, "conn_id", connID, "players", len(r.Players))
}

// Rooms summarizes the live rooms, oldest first.
func (m *Manager) Rooms() []Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	rooms := m.store.Rooms()
	out := make([]Summary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, Summary{
			ID:       r.ID,
			State:    r.State(),
			Players:  len(r.Players),
			HasOffer: r.Offer != nil,
		})
	}
	return out
}

// findByConnection scans the registry for the player bound to connID.
func (m *Manager) findByConnection(connID string) (*shared.Room, *shared.Player) {
	for _, r := range m.store.Rooms() {
		if p := r.PlayerByConnection(connID); p != nil {
			return r, p
		}
	}
	return nil, nil
}

// activePlayer resolves the caller and requires its room to be Active.
func (m *Manager) activePlayer(connID string) (*shared.Room, *shared.Player, error) {
	r, p := m.findByConnection(connID)
	if r == nil {
		return nil, nil, ErrNotInRoom
	}
	if !r.Active() {
		return nil, nil, ErrGameNotStarted
	}
	return r, p, nil
}

func (m *Manager) recordRooms() {
	if m.metrics == nil {
		return
	}
	var filling, active int
	for _, r := range m.store.Rooms() {
		if r.Active() {
			active++
		} else {
			filling++
		}
	}
	m.metrics.SetRooms(filling, active)
}
