package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"max=200"`
}

type UpdateSessionRequest struct {
	Title  *string `json:"title" validate:"omitempty,max=200"`
	Pinned *bool   `json:"pinned"`
}

type SessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Pinned    bool       `json:"pinned"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Id         uuid.UUID              `json:"id"`
	Text       string                 `json:"text"`
	IsFromUser bool                   `json:"is_from_user"`
	FileURL    *string                `json:"file_url,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// SendMessageRequest carries the new user turn. Text may be empty when a
// file is attached; the upload arrives as a multipart part.
type SendMessageRequest struct {
	Text string `json:"text" form:"text"`
}

type SendMessageResponse struct {
	UserMessage *MessageResponse `json:"user_message"`
	BotMessage  *MessageResponse `json:"bot_message"`
}

type InstructionResponse struct {
	SystemInstruction string `json:"system_instruction"`
}
