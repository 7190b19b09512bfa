package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession can be owned by a user or be anonymous (UserId nil).
type ChatSession struct {
	Id        uuid.UUID
	UserId    *uuid.UUID
	Title     string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// OwnedBy reports whether the requester may touch this session. Anonymous
// sessions are open to any requester.
func (s *ChatSession) OwnedBy(userId *uuid.UUID) bool {
	if s.UserId == nil {
		return true
	}
	return userId != nil && *s.UserId == *userId
}
