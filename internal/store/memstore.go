package store

import (
	"sync"

	"github.com/bongibault-romain/trading-game-server/internal/shared"
)

// MemoryStore is the room registry. Rooms are kept in creation order so that
// matchmaking scans are deterministic (oldest room first).
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*shared.Room
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]*shared.Room{},
	}
}

func (m *MemoryStore) GetRoom(id string) (*shared.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *shared.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[r.ID]; !ok {
		m.order = append(m.order, r.ID)
	}
	m.rooms[r.ID] = r
}

func (m *MemoryStore) DeleteRoom(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return
	}
	delete(m.rooms, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Rooms returns a snapshot of the live rooms, oldest first.
func (m *MemoryStore) Rooms() []*shared.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*shared.Room, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rooms[id])
	}
	return out
}
