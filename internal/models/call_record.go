package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Call status values. Keep these stable, they are persisted and exposed in
// history responses.
const (
	CallStatusOngoing = "ongoing"
	CallStatusEnded   = "ended"
)

// CallRecord is the persisted counterpart of one call occurrence. The channel
// token is also the name of the in-memory call room for the session's
// lifetime.
type CallRecord struct {
	gorm.Model

	// Channel is the unique token identifying this call occurrence.
	Channel string `gorm:"type:text;not null;uniqueIndex" json:"channel"`
	// CallerID is the identity that initiated the call.
	CallerID string `gorm:"type:text;not null;index" json:"caller_id"`
	// ReceiverID is the identity the call was placed to.
	ReceiverID string `gorm:"type:text;not null;index" json:"receiver_id"`
	// Participants holds both identities for history lookups.
	Participants pq.StringArray `gorm:"type:text[]" json:"participants"`
	// Status is "ongoing" until the session terminates, then "ended".
	Status string `gorm:"type:text;not null" json:"status"`
	// EndedAt is set when the record is closed.
	EndedAt time.Time `json:"ended_at"`
}
