package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn in a session's log. Text may be empty when a file
// is attached. IsFromUser is immutable after creation.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Text          string
	IsFromUser    bool
	FilePath      *string
	FileMime      *string
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}
