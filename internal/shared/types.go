package shared

import "time"

// PlayersPerRoom is the number of occupants that makes a room Active.
const PlayersPerRoom = 2

type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Player struct {
	ID           string `json:"id"`
	ConnectionID string `json:"-"`
	Nickname     string `json:"nickname"`
	Inventory    []Item `json:"inventory"`
}

type Offer struct {
	ProposerID       string   `json:"proposerId"`
	OfferedItemIDs   []string `json:"offeredItemIds"`
	RequestedItemIDs []string `json:"requestedItemIds"`
}

type Room struct {
	ID      string    `json:"id"`
	Players []*Player `json:"players"`
	Offer   *Offer    `json:"offer"`

	// LastChatAt keeps chat timestamps non-decreasing within the room.
	LastChatAt time.Time `json:"-"`
}

// Active reports whether the room has its full complement of players.
func (r *Room) Active() bool {
	return len(r.Players) == PlayersPerRoom
}

func (r *Room) State() string {
	if r.Active() {
		return "active"
	}
	return "filling"
}

func (r *Room) PlayerByConnection(connID string) *Player {
	for _, p := range r.Players {
		if p.ConnectionID == connID {
			return p
		}
	}
	return nil
}

func (r *Room) PlayerByID(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Opponent returns the occupant that is not playerID, or nil while Filling.
func (r *Room) Opponent(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID != playerID {
			return p
		}
	}
	return nil
}

// Owns reports whether every id is present in the inventory. An empty id list
// is trivially owned.
func (p *Player) Owns(ids []string) bool {
	owned := make(map[string]struct{}, len(p.Inventory))
	for _, it := range p.Inventory {
		owned[it.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := owned[id]; !ok {
			return false
		}
	}
	return true
}

// Take removes the items with the given ids and returns them in inventory order.
func (p *Player) Take(ids []string) []Item {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	kept := make([]Item, 0, len(p.Inventory))
	var taken []Item
	for _, it := range p.Inventory {
		if _, ok := want[it.ID]; ok {
			taken = append(taken, it)
			continue
		}
		kept = append(kept, it)
	}
	p.Inventory = kept
	return taken
}

func (p *Player) Give(items []Item) {
	p.Inventory = append(p.Inventory, items...)
}

// UniqueIDs drops repeated ids, keeping first-occurrence order.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
