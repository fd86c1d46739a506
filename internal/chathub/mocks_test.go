package chathub_test

import (
	"sync"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) AddFriend(userID, friendID string) error {
	args := m.Called(userID, friendID)
	return args.Error(0)
}

func (m *MockStorage) ListFriends(userID string) ([]models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.ChatMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetChatHistory(conversationID string) ([]models.ChatMessage, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockStorage) CreateCall(rec *models.CallRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockStorage) CloseCall(channel string) error {
	args := m.Called(channel)
	return args.Error(0)
}

func (m *MockStorage) GetCallHistory(identity string) ([]models.CallRecord, error) {
	args := m.Called(identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CallRecord), args.Error(1)
}

func (m *MockStorage) GetOngoingCalls() ([]models.CallRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CallRecord), args.Error(1)
}

func (m *MockStorage) SetOnline(identity string) error {
	args := m.Called(identity)
	return args.Error(0)
}

func (m *MockStorage) SetOffline(identity string) error {
	args := m.Called(identity)
	return args.Error(0)
}

func (m *MockStorage) OnlineStatus(identities []string) (map[string]bool, error) {
	args := m.Called(identities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockNotifier records offline notifications.
type MockNotifier struct {
	mu              sync.Mutex
	MissedCalls     []string
	OfflineMessages []string
}

func (n *MockNotifier) MissedCall(receiverID, callerID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.MissedCalls = append(n.MissedCalls, receiverID)
}

func (n *MockNotifier) OfflineMessage(receiverID, senderID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.OfflineMessages = append(n.OfflineMessages, receiverID)
}

// mockClient is a test double for the chathub.Client interface. Events the
// hub sends to the client land in RecvChannel.
type mockClient struct {
	identity    string
	RecvChannel chan models.Event
}

func newMockClient(identity string) *mockClient {
	return &mockClient{
		identity:    identity,
		RecvChannel: make(chan models.Event, 32), // Buffered to prevent blocking in tests
	}
}

func (c *mockClient) GetIdentity() string { return c.identity }

func (c *mockClient) GetSendChannel() chan<- models.Event { return c.RecvChannel }

func (c *mockClient) Run() {
	// Not needed for testing
}

func (c *mockClient) Close() {
	// Not needed for testing
}

// closingMockClient closes its receive channel on Close, the way the real
// websocket client does. Sending to it after disconnect cleanup would panic.
type closingMockClient struct {
	*mockClient
}

func (c *closingMockClient) Close() {
	close(c.RecvChannel)
}

// drain collects everything currently buffered for the client.
func (c *mockClient) drain() []models.Event {
	var events []models.Event
	for {
		select {
		case evt := <-c.RecvChannel:
			events = append(events, evt)
		default:
			return events
		}
	}
}

// countType returns how many buffered events have the given type.
func (c *mockClient) countType(t models.EventType) int {
	n := 0
	for _, evt := range c.drain() {
		if evt.Type == t {
			n++
		}
	}
	return n
}
