package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
	RoomID  string `json:"roomId" binding:"required,uuid"`
	Type    string `json:"type" binding:"omitempty,oneof=text image file"`
	ReplyTo string `json:"replyTo" binding:"omitempty,uuid"`
}

type EditMessageRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// UserInfo is the profile summary embedded in room and message
// responses in place of the full user record.
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
}

type ReadReceipt struct {
	UserID uuid.UUID `json:"userId"`
	ReadAt time.Time `json:"readAt"`
}
