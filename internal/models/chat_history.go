package models

import "gorm.io/gorm"

// ChatMessage is a persisted direct message. The embedded gorm.Model provides
// ID, CreatedAt, UpdatedAt, and DeletedAt; CreatedAt is the canonical
// timestamp delivered to clients.
type ChatMessage struct {
	gorm.Model

	// ConversationID groups the two participants' messages. It is an
	// order-independent function of the pair, see ConversationIDFor.
	ConversationID string `gorm:"type:text;not null;index:idx_conv_msg" json:"conversation_id"`
	// SenderID is the identity that sent the message.
	SenderID string `gorm:"type:text;not null;index:idx_conv_msg" json:"sender_id"`
	// ReceiverID is the identity the message is addressed to.
	ReceiverID string `gorm:"type:text;not null" json:"receiver_id"`
	// Body is the message text.
	Body string `gorm:"type:text;not null" json:"body"`
}

// ConversationIDFor returns the canonical conversation id for a pair of
// identities: the two ids sorted lexically and joined with "_". The result is
// identical regardless of which participant sends first.
func ConversationIDFor(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}
