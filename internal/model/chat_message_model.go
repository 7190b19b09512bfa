package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChatSession   *ChatSession   `gorm:"foreignKey:ChatSessionId;constraint:OnDelete:CASCADE"`
	Text          string         `gorm:"type:text;not null"`
	IsFromUser    bool           `gorm:"not null"`
	FilePath      *string        `gorm:"type:text"`
	FileMime      *string        `gorm:"type:varchar(100)"`
	Metadata      datatypes.JSON `gorm:"type:json"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
