package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	FeedbackThumbsUp   = 1
	FeedbackThumbsDown = -1
)

// MessageFeedback holds at most one rating per message. UserId is nulled,
// not cascaded, when the author is removed.
type MessageFeedback struct {
	Id        uuid.UUID
	MessageId uuid.UUID
	UserId    *uuid.UUID
	Rating    int
	CreatedAt time.Time
}
