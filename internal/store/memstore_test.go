package store

import (
	"testing"

	"github.com/bongibault-romain/trading-game-server/internal/shared"
)

func roomIDs(rooms []*shared.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.ID)
	}
	return out
}

func TestMemoryStoreKeepsCreationOrder(t *testing.T) {
	s := NewMemoryStore()
	for _, id := range []string{"c", "a", "b"} {
		s.SaveRoom(&shared.Room{ID: id})
	}

	// Re-saving must not move a room to the back.
	s.SaveRoom(&shared.Room{ID: "c"})

	got := roomIDs(s.Rooms())
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	s.SaveRoom(&shared.Room{ID: "a"})
	s.SaveRoom(&shared.Room{ID: "b"})

	s.DeleteRoom("a")
	s.DeleteRoom("missing")

	if _, ok := s.GetRoom("a"); ok {
		t.Fatal("expected deleted room to be gone")
	}
	if r, ok := s.GetRoom("b"); !ok || r.ID != "b" {
		t.Fatalf("expected room b to remain, got %+v", r)
	}
	if got := roomIDs(s.Rooms()); len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected [b], got %v", got)
	}
}

func TestMemoryStoreRoomsSnapshotIsDetached(t *testing.T) {
	s := NewMemoryStore()
	s.SaveRoom(&shared.Room{ID: "a"})

	snap := s.Rooms()
	s.DeleteRoom("a")

	if len(snap) != 1 {
		t.Fatalf("expected snapshot to keep its length, got %d", len(snap))
	}
	if len(s.Rooms()) != 0 {
		t.Fatal("expected store to be empty")
	}
}
