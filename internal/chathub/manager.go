package chathub

import (
	"log"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/notify"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/storage"
)

// Inbound pairs a signaling event with the connection it arrived on.
type Inbound struct {
	Client Client
	Event  models.Event
}

// ManagerService is the realtime session coordinator. Connection lifecycle
// and signaling events funnel through its Run loop, which dispatches to the
// registry, the message router, and the call manager. A failing handler is
// logged and isolated: nothing an event does can take the loop down or
// corrupt another channel's state.
type ManagerService struct {
	Clients map[Client]struct{}

	// Channels
	RegisterCh   chan Client
	UnregisterCh chan Client
	InboundCh    chan Inbound

	Registry *Registry
	Rooms    *Rooms
	Router   *Router
	Calls    *CallManager

	Storage storage.Storage
}

// NewManagerService wires the coordinator's parts together.
func NewManagerService(s storage.Storage, n notify.Notifier) *ManagerService {
	rooms := NewRooms()
	registry := NewRegistry(rooms)
	return &ManagerService{
		Clients:      make(map[Client]struct{}),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		InboundCh:    make(chan Inbound, 64),
		Registry:     registry,
		Rooms:        rooms,
		Router:       NewRouter(rooms, registry, s, n),
		Calls:        NewCallManager(rooms, registry, s, n),
		Storage:      s,
	}
}

// Run is the hub's main loop. One event is handled to completion before the
// next starts.
func (m *ManagerService) Run() {
	log.Println("Chat hub started.")
	for {
		select {
		case c := <-m.RegisterCh:
			m.Clients[c] = struct{}{}

		case c := <-m.UnregisterCh:
			m.handleDisconnect(c)

		case in := <-m.InboundCh:
			m.dispatch(in.Client, in.Event)
		}
	}
}

// dispatch routes one inbound signaling event. The event set is closed;
// anything else is dropped with a log line and no state change.
func (m *ManagerService) dispatch(c Client, evt models.Event) {
	identity := c.GetIdentity()

	switch evt.Type {
	case models.EventRegister:
		// The in-band identity must match the one authenticated at upgrade.
		if evt.Identity != "" && evt.Identity != identity {
			log.Printf("Dropped register for %s from connection authenticated as %s", evt.Identity, identity)
			return
		}
		m.Registry.Register(identity, c)
		if err := m.Storage.SetOnline(identity); err != nil {
			log.Printf("Failed to mark %s online: %v", identity, err)
		}

	case models.EventSendMessage:
		// The sender is always the authenticated connection, whatever the
		// payload claims.
		if _, err := m.Router.SendMessage(identity, evt.Receiver, evt.Body); err != nil {
			log.Printf("send-message from %s rejected: %v", identity, err)
		}

	case models.EventCallUser:
		if evt.To == "" || evt.Channel == "" {
			log.Printf("Dropped call-user from %s with missing payload", identity)
			return
		}
		if err := m.Calls.StartCall(identity, evt.To, evt.Channel); err != nil {
			log.Printf("call-user from %s failed: %v", identity, err)
		}

	case models.EventJoinCallRoom:
		if evt.Channel == "" {
			log.Printf("Dropped join-call-room from %s with missing channel", identity)
			return
		}
		m.Calls.JoinCallRoom(evt.Channel, c)

	case models.EventEndCall:
		if evt.Channel == "" {
			log.Printf("Dropped end-call from %s with missing channel", identity)
			return
		}
		m.Calls.EndCall(evt.Channel)

	default:
		log.Printf("Dropped unknown event %q from %s", evt.Type, identity)
	}
}

// handleDisconnect tears down everything tied to a dropped connection: the
// identity binding and personal room, membership in any call rooms (possibly
// ending those calls), and finally the client itself.
func (m *ManagerService) handleDisconnect(c Client) {
	if _, ok := m.Clients[c]; !ok {
		return
	}
	delete(m.Clients, c)

	identity, stillConnected := m.Registry.Unregister(c)
	m.Calls.HandleDisconnect(c, identity, stillConnected)
	// Sweep rooms no session owns (a call room joined for a channel that
	// never started or already ended), so no membership set keeps a closed
	// connection a later broadcast would trip over.
	m.Rooms.LeaveAll(c)

	if identity != "" && !stillConnected {
		if err := m.Storage.SetOffline(identity); err != nil {
			log.Printf("Failed to mark %s offline: %v", identity, err)
		}
	}

	c.Close()
}
