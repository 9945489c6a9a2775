package room

// Transport is the connection layer the manager talks back through. Emit and
// Broadcast must encode data before returning and must not block; the manager
// calls them while holding its lock.
type Transport interface {
	// Emit sends an event to a single connection.
	Emit(connID string, event string, data any)
	// Broadcast sends an event to every connection subscribed to roomID.
	Broadcast(roomID string, event string, data any)
	// Subscribe adds the connection to the room's broadcast group.
	Subscribe(connID string, roomID string)
	// Disconnect flushes pending events and closes the connection.
	Disconnect(connID string)
}
