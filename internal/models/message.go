package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageTypeText   = "text"
	MessageTypeImage  = "image"
	MessageTypeFile   = "file"
	MessageTypeSystem = "system"
)

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Content   string    `gorm:"size:1000;not null"`
	Type      string    `gorm:"size:10;default:'text'"`
	Edited    bool      `gorm:"default:false"`
	EditedAt  *time.Time
	ReplyToID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	Sender  User          `gorm:"foreignKey:SenderID"`
	ReplyTo *Message      `gorm:"foreignKey:ReplyToID"`
	ReadBy  []MessageRead `gorm:"foreignKey:MessageID"`
}

func (m *Message) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MessageRead is a per-user read receipt. The composite key keeps it
// to at most one row per user and message.
type MessageRead struct {
	MessageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReadAt    time.Time

	User User `gorm:"foreignKey:UserID"`
}
