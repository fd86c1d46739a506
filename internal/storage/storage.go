package storage

import (
	"context"
	"errors"
	"log"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Storage is the persistence gateway consumed by the hub and the HTTP
// handlers. PostgreSQL (via GORM) backs the durable records, Redis backs the
// volatile presence set.
type Storage interface {
	SaveUser(user *models.User) error
	UpdateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)

	AddFriend(userID, friendID string) error
	ListFriends(userID string) ([]models.User, error)

	SaveMessage(msg *models.ChatMessage) error
	GetChatHistory(conversationID string) ([]models.ChatMessage, error)

	CreateCall(rec *models.CallRecord) error
	CloseCall(channel string) error
	GetCallHistory(identity string) ([]models.CallRecord, error)
	GetOngoingCalls() ([]models.CallRecord, error)

	SetOnline(identity string) error
	SetOffline(identity string) error
	OnlineStatus(identities []string) (map[string]bool, error)
}

// Service implements Storage on top of GORM and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddFriend stores the friendship in both directions so that ListFriends is a
// single indexed query per side.
func (s *Service) AddFriend(userID, friendID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		pair := []models.Friendship{
			{UserID: userID, FriendID: friendID},
			{UserID: friendID, FriendID: userID},
		}
		for i := range pair {
			if err := tx.Where(&pair[i]).FirstOrCreate(&pair[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) ListFriends(userID string) ([]models.User, error) {
	var friends []models.User
	err := s.DB.
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Find(&friends).Error
	if err != nil {
		log.Printf("ERROR: Failed to list friends for %s: %v", userID, err)
		return nil, err
	}
	return friends, nil
}

// SaveMessage persists the message. GORM fills ID and CreatedAt on the passed
// struct, which becomes the canonical record delivered to clients.
func (s *Service) SaveMessage(msg *models.ChatMessage) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message in conversation %s: %v", msg.ConversationID, err)
		return err
	}
	return nil
}

// GetChatHistory returns the conversation's messages ordered oldest first.
func (s *Service) GetChatHistory(conversationID string) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	err := s.DB.
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&history).Error
	if err != nil {
		log.Printf("ERROR: Failed to get chat history for %s: %v", conversationID, err)
		return nil, err
	}
	return history, nil
}

func (s *Service) CreateCall(rec *models.CallRecord) error {
	if rec.Status == "" {
		rec.Status = models.CallStatusOngoing
	}
	if err := s.DB.Create(rec).Error; err != nil {
		log.Printf("ERROR: Failed to create call record for channel %s: %v", rec.Channel, err)
		return err
	}
	return nil
}

// CloseCall marks the call record ended and stamps EndedAt.
func (s *Service) CloseCall(channel string) error {
	return s.DB.Model(&models.CallRecord{}).
		Where("channel = ?", channel).
		Updates(map[string]interface{}{
			"status":   models.CallStatusEnded,
			"ended_at": gorm.Expr("NOW()"),
		}).Error
}

// GetCallHistory returns all calls the identity took part in, newest first.
func (s *Service) GetCallHistory(identity string) ([]models.CallRecord, error) {
	var calls []models.CallRecord
	err := s.DB.
		Where("caller_id = ? OR receiver_id = ?", identity, identity).
		Order("created_at desc").
		Find(&calls).Error
	if err != nil {
		log.Printf("ERROR: Failed to get call history for %s: %v", identity, err)
		return nil, err
	}
	return calls, nil
}

func (s *Service) GetOngoingCalls() ([]models.CallRecord, error) {
	var calls []models.CallRecord
	err := s.DB.
		Where("status = ?", models.CallStatusOngoing).
		Order("created_at asc").
		Find(&calls).Error
	if err != nil {
		return nil, err
	}
	return calls, nil
}

// presenceKey is the Redis set holding currently connected identities.
const presenceKey = "online_users"

func (s *Service) SetOnline(identity string) error {
	return s.Redis.SAdd(s.Ctx, presenceKey, identity).Err()
}

func (s *Service) SetOffline(identity string) error {
	return s.Redis.SRem(s.Ctx, presenceKey, identity).Err()
}

// OnlineStatus reports membership of each identity in the presence set.
func (s *Service) OnlineStatus(identities []string) (map[string]bool, error) {
	status := make(map[string]bool, len(identities))
	if len(identities) == 0 {
		return status, nil
	}
	members := make([]interface{}, len(identities))
	for i, id := range identities {
		members[i] = id
	}
	found, err := s.Redis.SMIsMember(s.Ctx, presenceKey, members...).Result()
	if err != nil {
		return nil, err
	}
	for i, id := range identities {
		status[id] = found[i]
	}
	return status, nil
}
