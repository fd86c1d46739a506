package models

// EventType enumerates every signaling event carried over a client's
// websocket connection. The set is closed: the hub dispatcher handles each
// inbound type explicitly and drops anything else.
type EventType string

const (
	// Inbound (client to server).
	EventRegister     EventType = "register"
	EventSendMessage  EventType = "send-message"
	EventCallUser     EventType = "call-user"
	EventJoinCallRoom EventType = "join-call-room"
	EventEndCall      EventType = "end-call"

	// Outbound (server to client).
	EventNewMessage     EventType = "new-message"
	EventIncomingCall   EventType = "incoming-call"
	EventJoinedCallRoom EventType = "joined-call-room"
	EventCallEnded      EventType = "call-ended"
)

// Event is the envelope for all signaling traffic. Only the fields relevant
// to the Type are populated; the rest stay empty and are omitted on the wire.
type Event struct {
	Type EventType `json:"type"`

	// register
	Identity string `json:"identity,omitempty"`

	// send-message
	Sender   string `json:"sender,omitempty"`
	Receiver string `json:"receiver,omitempty"`
	Body     string `json:"body,omitempty"`

	// call-user / incoming-call
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// call-user / join-call-room / end-call / incoming-call
	Channel string `json:"channel,omitempty"`

	// new-message
	Message *ChatMessage `json:"message,omitempty"`
}
