package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic for the in-process bus; NATS subjects derive from EventType.
const ChatMessageCreatedTopic = "chat.message.created"

const ChatMessageCreatedType = "CHAT_MESSAGE_CREATED"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// ChatMessageCreatedPayload is the wire form published after a user turn is
// persisted.
type ChatMessageCreatedPayload struct {
	SessionId uuid.UUID `json:"session_id"`
	MessageId uuid.UUID `json:"message_id"`
	Text      string    `json:"text"`
	FromUser  bool      `json:"from_user"`
}

func NewChatMessageCreated(payload ChatMessageCreatedPayload) Event {
	return BaseEvent{
		Type: ChatMessageCreatedType,
		Data: map[string]interface{}{
			"session_id": payload.SessionId.String(),
			"message_id": payload.MessageId.String(),
			"text":       payload.Text,
			"from_user":  payload.FromUser,
		},
		OccurredAt: time.Now(),
	}
}
