package dto

import (
	"time"

	"github.com/google/uuid"
)

type RateMessageRequest struct {
	Rating int `json:"rating" validate:"required,oneof=1 -1"`
}

type FeedbackResponse struct {
	Id        uuid.UUID `json:"id"`
	MessageId uuid.UUID `json:"message_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
