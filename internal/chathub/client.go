package chathub

import "github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"

// Client is the interface for one live transport connection. It abstracts
// the underlying communication mechanism so the hub can manage different
// client types uniformly (websocket in production, in-memory fakes in tests).
type Client interface {
	// GetIdentity returns the authenticated identity bound to this
	// connection.
	GetIdentity() string

	// GetSendChannel returns the channel through which the hub delivers
	// outbound signaling events to this connection.
	GetSendChannel() chan<- models.Event

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outbound channel and connection.
	Close()
}
