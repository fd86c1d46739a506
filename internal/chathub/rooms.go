package chathub

import (
	"log"
	"sync"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
)

// Rooms is the group-membership multiplexer. A room is a named set of
// clients; an event broadcast to a room reaches every member at the time of
// the call. There is no buffering: clients that join later see nothing.
type Rooms struct {
	mu      sync.RWMutex
	members map[string]map[Client]struct{}
}

func NewRooms() *Rooms {
	return &Rooms{members: make(map[string]map[Client]struct{})}
}

// Join adds the client to the room, creating the room on first join.
// Joining a room twice is a no-op.
func (r *Rooms) Join(room string, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[room]
	if !ok {
		set = make(map[Client]struct{})
		r.members[room] = set
	}
	set[c] = struct{}{}
}

// Leave removes the client from the room, deleting the room on last leave.
func (r *Rooms) Leave(room string, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[room]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.members, room)
	}
}

// LeaveAll removes the client from every room it belongs to, deleting rooms
// left empty. Disconnect cleanup runs this so no room keeps a reference to a
// closed connection.
func (r *Rooms) LeaveAll(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for room, set := range r.members {
		if _, ok := set[c]; !ok {
			continue
		}
		delete(set, c)
		if len(set) == 0 {
			delete(r.members, room)
		}
	}
}

// Drop discards the room and its whole membership set.
func (r *Rooms) Drop(room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, room)
}

// Size returns the current membership count of the room.
func (r *Rooms) Size(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members[room])
}

// Contains reports whether the client is currently a member of the room.
func (r *Rooms) Contains(room string, c Client) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[room][c]
	return ok
}

// Broadcast delivers the event to every current member of the room. Delivery
// into each client's send channel is non-blocking: a client whose buffer is
// full misses the event rather than stalling the room.
func (r *Rooms) Broadcast(room string, evt models.Event) {
	r.mu.RLock()
	snapshot := make([]Client, 0, len(r.members[room]))
	for c := range r.members[room] {
		snapshot = append(snapshot, c)
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		select {
		case c.GetSendChannel() <- evt:
		default:
			log.Printf("Dropped %s event for slow client %s in room %s", evt.Type, c.GetIdentity(), room)
		}
	}
}
