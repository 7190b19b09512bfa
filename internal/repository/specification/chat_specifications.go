package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type ByMessageID struct {
	MessageID uuid.UUID
}

func (s ByMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_id = ?", s.MessageID)
}

// SessionOwnedBy matches sessions owned by a user, or guest sessions when
// the user is nil.
type SessionOwnedBy struct {
	UserID *uuid.UUID
}

func (s SessionOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	if s.UserID == nil {
		return db.Where("user_id IS NULL")
	}
	return db.Where("user_id = ?", *s.UserID)
}

// MessageLogOrder sorts a session's log oldest first. The id tie-break keeps
// the order total when two rows share a creation timestamp, which happens on
// backends with coarse clock resolution.
type MessageLogOrder struct{}

func (s MessageLogOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

// SessionListOrder sorts pinned sessions first, then most recently updated.
type SessionListOrder struct{}

func (s SessionListOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("pinned DESC").Order("updated_at DESC")
}
