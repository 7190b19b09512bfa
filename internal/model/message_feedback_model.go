package model

import (
	"time"

	"github.com/google/uuid"
)

type MessageFeedback struct {
	Id        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	MessageId uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	Message   *ChatMessage `gorm:"foreignKey:MessageId;constraint:OnDelete:CASCADE"`
	UserId    *uuid.UUID   `gorm:"type:uuid;index"`
	User      *User        `gorm:"foreignKey:UserId;constraint:OnDelete:SET NULL"` // nulled, not cascaded, when the author goes away
	Rating    int          `gorm:"not null"`
	CreatedAt time.Time    `gorm:"autoCreateTime"`
}

func (MessageFeedback) TableName() string {
	return "message_feedbacks"
}
