package chathub_test

import (
	"testing"
	"time"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/chathub"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRunningHub(storageMock *MockStorage) *chathub.ManagerService {
	hub := chathub.NewManagerService(storageMock, new(MockNotifier))
	go hub.Run()
	return hub
}

// connect registers a client with the hub and sends the in-band register
// event, the way a real connection comes online.
func connect(hub *chathub.ManagerService, identity string) *mockClient {
	c := newMockClient(identity)
	hub.RegisterCh <- c
	hub.InboundCh <- chathub.Inbound{Client: c, Event: models.Event{
		Type:     models.EventRegister,
		Identity: identity,
	}}
	return c
}

func TestManager_RegisterAndMessageScenario(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("SetOnline", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("SaveMessage", mock.AnythingOfType("*models.ChatMessage")).Return(nil)
	hub := newRunningHub(storageMock)

	a := connect(hub, "user_A")
	b := connect(hub, "user_B")

	hub.InboundCh <- chathub.Inbound{Client: a, Event: models.Event{
		Type:     models.EventSendMessage,
		Receiver: "user_B",
		Body:     "hi",
	}}
	time.Sleep(100 * time.Millisecond)

	storageMock.AssertCalled(t, "SetOnline", "user_A")
	storageMock.AssertCalled(t, "SetOnline", "user_B")
	storageMock.AssertCalled(t, "SaveMessage", mock.MatchedBy(func(msg *models.ChatMessage) bool {
		return msg.ConversationID == "user_A_user_B" && msg.SenderID == "user_A"
	}))

	assert.Equal(t, 1, a.countType(models.EventNewMessage))
	assert.Equal(t, 1, b.countType(models.EventNewMessage))
}

func TestManager_RegisterIdentityMismatchDropped(t *testing.T) {
	storageMock := new(MockStorage)
	hub := newRunningHub(storageMock)

	c := newMockClient("user_A")
	hub.RegisterCh <- c
	hub.InboundCh <- chathub.Inbound{Client: c, Event: models.Event{
		Type:     models.EventRegister,
		Identity: "user_B", // does not match the authenticated identity
	}}
	time.Sleep(100 * time.Millisecond)

	assert.False(t, hub.Registry.IsConnected("user_B"))
	assert.False(t, hub.Registry.IsConnected("user_A"))
	storageMock.AssertNotCalled(t, "SetOnline", mock.Anything)
}

func TestManager_CallLifecycleScenario(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("SetOnline", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("SetOffline", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("CreateCall", mock.AnythingOfType("*models.CallRecord")).Return(nil)
	storageMock.On("CloseCall", "ch1").Return(nil)
	hub := newRunningHub(storageMock)

	a := connect(hub, "user_A")
	b := connect(hub, "user_B")

	// A calls B.
	hub.InboundCh <- chathub.Inbound{Client: a, Event: models.Event{
		Type:    models.EventCallUser,
		To:      "user_B",
		Channel: "ch1",
	}}
	time.Sleep(100 * time.Millisecond)

	storageMock.AssertCalled(t, "CreateCall", mock.MatchedBy(func(rec *models.CallRecord) bool {
		return rec.Channel == "ch1" && rec.Status == models.CallStatusOngoing
	}))
	events := b.drain()
	if assert.Len(t, events, 1) {
		assert.Equal(t, models.EventIncomingCall, events[0].Type)
		assert.Equal(t, "user_A", events[0].From)
		assert.Equal(t, "ch1", events[0].Channel)
	}

	// Both join the call room.
	hub.InboundCh <- chathub.Inbound{Client: a, Event: models.Event{Type: models.EventJoinCallRoom, Channel: "ch1"}}
	hub.InboundCh <- chathub.Inbound{Client: b, Event: models.Event{Type: models.EventJoinCallRoom, Channel: "ch1"}}
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, a.countType(models.EventJoinedCallRoom))
	assert.Equal(t, 1, b.countType(models.EventJoinedCallRoom))

	// A disconnects abruptly: membership drops to 1, the call ends for B too.
	hub.UnregisterCh <- a
	time.Sleep(100 * time.Millisecond)

	storageMock.AssertNumberOfCalls(t, "CloseCall", 1)
	assert.Equal(t, 1, b.countType(models.EventCallEnded))
	storageMock.AssertCalled(t, "SetOffline", "user_A")

	// B disconnecting afterwards re-triggers nothing.
	hub.UnregisterCh <- b
	time.Sleep(100 * time.Millisecond)
	storageMock.AssertNumberOfCalls(t, "CloseCall", 1)
	storageMock.AssertCalled(t, "SetOffline", "user_B")
}

func TestManager_DisconnectSweepsSessionlessCallRooms(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("SetOnline", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("SetOffline", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("SaveMessage", mock.AnythingOfType("*models.ChatMessage")).Return(nil)
	hub := newRunningHub(storageMock)

	// A joins a call room for a channel no call-user ever started, then
	// drops. The disconnect must clear that membership even though no
	// session owns the room.
	a := &closingMockClient{newMockClient("user_A")}
	hub.RegisterCh <- a
	hub.InboundCh <- chathub.Inbound{Client: a, Event: models.Event{
		Type:     models.EventRegister,
		Identity: "user_A",
	}}
	hub.InboundCh <- chathub.Inbound{Client: a, Event: models.Event{Type: models.EventJoinCallRoom, Channel: "chX"}}
	time.Sleep(100 * time.Millisecond)

	hub.UnregisterCh <- a
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, hub.Rooms.Size("chX"), "no room may keep a closed connection")

	// end-call on the dead channel re-broadcasts into the room; with the
	// stale member gone this must not take the loop down.
	b := connect(hub, "user_B")
	hub.InboundCh <- chathub.Inbound{Client: b, Event: models.Event{Type: models.EventEndCall, Channel: "chX"}}
	hub.InboundCh <- chathub.Inbound{Client: b, Event: models.Event{
		Type:     models.EventSendMessage,
		Receiver: "user_B",
		Body:     "still serving",
	}}
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, b.countType(models.EventNewMessage), "the loop keeps serving after the stale-room broadcast")
}

func TestManager_UnknownEventIsIsolated(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("SetOnline", mock.AnythingOfType("string")).Return(nil)
	storageMock.On("SaveMessage", mock.AnythingOfType("*models.ChatMessage")).Return(nil)
	hub := newRunningHub(storageMock)

	a := connect(hub, "user_A")
	hub.InboundCh <- chathub.Inbound{Client: a, Event: models.Event{Type: "definitely-not-an-event"}}

	// The loop keeps serving after the dropped event.
	hub.InboundCh <- chathub.Inbound{Client: a, Event: models.Event{
		Type:     models.EventSendMessage,
		Receiver: "user_B",
		Body:     "still alive",
	}}
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, a.countType(models.EventNewMessage))
}
