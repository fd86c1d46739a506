package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the system. The ID doubles as the identity
// carried by signaling events and JWT claims.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `gorm:"not null" json:"-"`

	// TelegramChatID links the account to a Telegram chat for best-effort
	// offline notifications. Zero means no link.
	TelegramChatID int64 `gorm:"index" json:"-"`

	IsBlocked    bool  `json:"-"`
	BlockEndTime int64 `json:"-"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is not set.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Friendship is a directed friend-list entry. Adding a friend creates the
// entry in both directions so listing stays a single query.
type Friendship struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   string `gorm:"index:idx_friend_pair,unique;not null"`
	FriendID string `gorm:"index:idx_friend_pair,unique;not null"`
}
