package chathub

import (
	"log"
	"sync"
	"time"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/config"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/notify"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/storage"
	"github.com/lib/pq"
)

// callSession is the in-memory state of one call occurrence. The channel
// token is also the call-room name. The session mutex is the per-channel
// exclusive section that makes termination exactly-once: every termination
// trigger for the channel runs terminate() under it, and only the first pass
// sees ended == false.
type callSession struct {
	caller    string
	receiver  string
	channel   string
	createdAt time.Time

	mu    sync.Mutex
	ended bool
}

// CallManager owns the call lifecycle: it creates sessions, tracks call-room
// membership through Rooms, and terminates each session exactly once no
// matter how many hangups and disconnects race for the same channel.
type CallManager struct {
	mu       sync.Mutex
	sessions map[string]*callSession

	rooms    *Rooms
	registry *Registry
	storage  storage.Storage
	notifier notify.Notifier
}

func NewCallManager(rooms *Rooms, registry *Registry, s storage.Storage, n notify.Notifier) *CallManager {
	return &CallManager{
		sessions: make(map[string]*callSession),
		rooms:    rooms,
		registry: registry,
		storage:  s,
		notifier: n,
	}
}

// StartCall persists a call record with status "ongoing", creates the
// in-memory session, and signals the receiver's personal room. A receiver
// with no live connections simply misses the event (best-effort); an
// out-of-band notification is attempted instead.
func (m *CallManager) StartCall(caller, receiver, channel string) error {
	rec := &models.CallRecord{
		Channel:      channel,
		CallerID:     caller,
		ReceiverID:   receiver,
		Participants: pq.StringArray{caller, receiver},
		Status:       models.CallStatusOngoing,
	}
	if err := m.storage.CreateCall(rec); err != nil {
		return err
	}

	m.mu.Lock()
	if _, exists := m.sessions[channel]; !exists {
		m.sessions[channel] = &callSession{
			caller:    caller,
			receiver:  receiver,
			channel:   channel,
			createdAt: time.Now(),
		}
	}
	m.mu.Unlock()

	if !m.registry.IsConnected(receiver) {
		m.notifier.MissedCall(receiver, caller)
		return nil
	}
	m.rooms.Broadcast(PersonalRoom(receiver), models.Event{
		Type:    models.EventIncomingCall,
		From:    caller,
		Channel: channel,
	})
	return nil
}

// JoinCallRoom adds the connection to the call room and acknowledges it.
func (m *CallManager) JoinCallRoom(channel string, c Client) {
	m.rooms.Join(channel, c)
	select {
	case c.GetSendChannel() <- models.Event{Type: models.EventJoinedCallRoom, Channel: channel}:
	default:
		log.Printf("Dropped join ack for slow client %s on channel %s", c.GetIdentity(), channel)
	}
}

// EndCall is the explicit termination path. Ending a channel that has already
// ended (or never existed here) only re-broadcasts the termination event,
// which is harmless: clients treat call-ended as idempotent.
func (m *CallManager) EndCall(channel string) {
	m.mu.Lock()
	s := m.sessions[channel]
	m.mu.Unlock()

	if s == nil {
		m.rooms.Broadcast(channel, models.Event{Type: models.EventCallEnded, Channel: channel})
		return
	}
	m.terminate(s)
}

// HandleDisconnect is the implicit termination path. The dropped connection
// leaves every call room it belongs to; any room left with too few parties to
// carry a two-party call is terminated through the same exactly-once path as
// an explicit hangup.
//
// identity and stillConnected describe the registry binding the connection
// just lost. When an identity's last connection drops, sessions it is a party
// to that never gathered two room members are reclaimed as well, so an
// unanswered call does not stay ongoing for the process lifetime.
func (m *CallManager) HandleDisconnect(c Client, identity string, stillConnected bool) {
	m.mu.Lock()
	sessions := make([]*callSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		if m.rooms.Contains(s.channel, c) {
			m.rooms.Leave(s.channel, c)
			if m.rooms.Size(s.channel) <= config.CallAbandonThreshold {
				m.terminate(s)
			}
			continue
		}
		if stillConnected || identity == "" {
			continue
		}
		if (s.caller == identity || s.receiver == identity) && m.rooms.Size(s.channel) < 2 {
			m.terminate(s)
		}
	}
}

// terminate runs the termination sequence: close the persisted record,
// broadcast call-ended to the call room, and discard the session and its
// membership. The whole sequence holds the session mutex, so concurrent
// triggers for the same channel serialize and only the first one acts.
// Persistence failure is logged but never blocks the live-session teardown.
func (m *CallManager) terminate(s *callSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.ended = true

	if err := m.storage.CloseCall(s.channel); err != nil {
		log.Printf("ERROR: Failed to close call record for channel %s: %v", s.channel, err)
	}
	m.rooms.Broadcast(s.channel, models.Event{Type: models.EventCallEnded, Channel: s.channel})
	m.rooms.Drop(s.channel)

	m.mu.Lock()
	delete(m.sessions, s.channel)
	m.mu.Unlock()

	log.Printf("Call %s between %s and %s ended after %s", s.channel, s.caller, s.receiver, time.Since(s.createdAt))
}

// ActiveSessions returns the number of channels with a live session.
func (m *CallManager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
