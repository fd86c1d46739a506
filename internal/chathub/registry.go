package chathub

import (
	"sync"
)

// Registry binds identities to their live connections and keeps every
// connection of an identity joined to that identity's personal room. Purely
// in-memory, scoped to the process lifetime.
type Registry struct {
	mu          sync.RWMutex
	byIdentity  map[string]map[Client]struct{}
	connections map[Client]string

	rooms *Rooms
}

func NewRegistry(rooms *Rooms) *Registry {
	return &Registry{
		byIdentity:  make(map[string]map[Client]struct{}),
		connections: make(map[Client]string),
		rooms:       rooms,
	}
}

// PersonalRoom returns the name of the identity's personal delivery room.
func PersonalRoom(identity string) string {
	return identity
}

// Register binds the connection to the identity and joins it to the personal
// room. Registering the same connection again is a no-op, so membership never
// duplicates. One identity may hold several simultaneous connections.
func (r *Registry) Register(identity string, c Client) {
	r.mu.Lock()
	if prev, ok := r.connections[c]; ok {
		if prev == identity {
			r.mu.Unlock()
			return
		}
		// Rebinding to a different identity: drop the old binding first.
		r.removeLocked(c, prev)
		defer r.rooms.Leave(PersonalRoom(prev), c)
	}
	r.connections[c] = identity
	set, ok := r.byIdentity[identity]
	if !ok {
		set = make(map[Client]struct{})
		r.byIdentity[identity] = set
	}
	set[c] = struct{}{}
	r.mu.Unlock()

	r.rooms.Join(PersonalRoom(identity), c)
}

// Unregister removes the connection from its identity binding and personal
// room. It returns the identity the connection was bound to and whether that
// identity still has other live connections.
func (r *Registry) Unregister(c Client) (identity string, stillConnected bool) {
	r.mu.Lock()
	identity, ok := r.connections[c]
	if !ok {
		r.mu.Unlock()
		return "", false
	}
	r.removeLocked(c, identity)
	stillConnected = len(r.byIdentity[identity]) > 0
	r.mu.Unlock()

	r.rooms.Leave(PersonalRoom(identity), c)
	return identity, stillConnected
}

// IsConnected reports whether the identity has at least one live connection.
func (r *Registry) IsConnected(identity string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byIdentity[identity]) > 0
}

// IdentityOf returns the identity a connection is registered under, or ""
// when the connection never registered.
func (r *Registry) IdentityOf(c Client) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connections[c]
}

func (r *Registry) removeLocked(c Client, identity string) {
	delete(r.connections, c)
	if set, ok := r.byIdentity[identity]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(r.byIdentity, identity)
		}
	}
}
