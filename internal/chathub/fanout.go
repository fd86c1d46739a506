package chathub

import (
	"errors"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/notify"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/storage"
)

// ErrInvalidMessage is returned for messages with a missing sender, receiver,
// or body. Nothing is persisted or delivered in that case.
var ErrInvalidMessage = errors.New("message requires sender, receiver and body")

// Router validates, persists, and fans out chat messages to both
// participants' personal rooms.
type Router struct {
	rooms    *Rooms
	registry *Registry
	storage  storage.Storage
	notifier notify.Notifier
}

func NewRouter(rooms *Rooms, registry *Registry, s storage.Storage, n notify.Notifier) *Router {
	return &Router{rooms: rooms, registry: registry, storage: s, notifier: n}
}

// SendMessage persists the message and delivers the stored record to the
// sender's and receiver's personal rooms. Self-delivery keeps every device of
// the sender in sync. Delivery happens only after successful persistence; on
// failure the error goes back to the caller and nothing is broadcast.
func (r *Router) SendMessage(sender, receiver, body string) (*models.ChatMessage, error) {
	if sender == "" || receiver == "" || body == "" {
		return nil, ErrInvalidMessage
	}

	msg := &models.ChatMessage{
		ConversationID: models.ConversationIDFor(sender, receiver),
		SenderID:       sender,
		ReceiverID:     receiver,
		Body:           body,
	}
	if err := r.storage.SaveMessage(msg); err != nil {
		return nil, err
	}

	evt := models.Event{Type: models.EventNewMessage, Message: msg}
	r.rooms.Broadcast(PersonalRoom(sender), evt)
	if receiver != sender {
		r.rooms.Broadcast(PersonalRoom(receiver), evt)
	}

	if !r.registry.IsConnected(receiver) {
		r.notifier.OfflineMessage(receiver, sender)
	}
	return msg, nil
}
