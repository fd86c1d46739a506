// Package notify delivers best-effort out-of-band notifications to users who
// have no live websocket connection. Failures are logged and swallowed; the
// signaling path never depends on a notification going out.
package notify

import (
	"fmt"
	"log"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/storage"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier is called when a message or call targets an offline identity.
type Notifier interface {
	MissedCall(receiverID, callerID string)
	OfflineMessage(receiverID, senderID string)
}

// TelegramNotifier sends notifications through a Telegram bot to users who
// linked a Telegram chat to their account.
type TelegramNotifier struct {
	BotAPI  *tgbotapi.BotAPI
	Storage storage.Storage
}

// NewTelegramNotifier authorizes the bot with the given token.
func NewTelegramNotifier(token string, s storage.Storage) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Notifier authorized on Telegram account %s", bot.Self.UserName)
	return &TelegramNotifier{BotAPI: bot, Storage: s}, nil
}

func (n *TelegramNotifier) MissedCall(receiverID, callerID string) {
	n.send(receiverID, func(caller string) string {
		return fmt.Sprintf("Missed call from %s.", caller)
	}, callerID)
}

func (n *TelegramNotifier) OfflineMessage(receiverID, senderID string) {
	n.send(receiverID, func(sender string) string {
		return fmt.Sprintf("New message from %s.", sender)
	}, senderID)
}

func (n *TelegramNotifier) send(receiverID string, text func(string) string, otherID string) {
	receiver, err := n.Storage.GetUserByID(receiverID)
	if err != nil {
		log.Printf("Notify: failed to load user %s: %v", receiverID, err)
		return
	}
	if receiver.TelegramChatID == 0 {
		return // no linked chat
	}

	name := otherID
	if other, err := n.Storage.GetUserByID(otherID); err == nil {
		name = displayName(other)
	}

	msg := tgbotapi.NewMessage(receiver.TelegramChatID, text(name))
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("Notify: failed to send Telegram message to %s: %v", receiverID, err)
	}
}

func displayName(u *models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// NopNotifier is used when no Telegram bot token is configured.
type NopNotifier struct{}

func (NopNotifier) MissedCall(receiverID, callerID string) {}

func (NopNotifier) OfflineMessage(receiverID, senderID string) {}
