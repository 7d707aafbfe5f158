package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const DefaultMaxMembers = 50

type Room struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:50;not null"`
	Code         string    `gorm:"size:8;uniqueIndex;not null"`
	Description  string    `gorm:"size:200"`
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null"`
	MaxMembers   int       `gorm:"default:50"`
	IsPrivate    bool
	LastActivity time.Time
	CreatedAt    time.Time

	Creator User         `gorm:"foreignKey:CreatedBy"`
	Members []RoomMember `gorm:"foreignKey:RoomID"`
}

func (r *Room) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// HasMember reports whether userID currently belongs to the room.
// Assumes Members has been loaded.
func (r *Room) HasMember(userID uuid.UUID) bool {
	for _, m := range r.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func (r *Room) IsFull() bool {
	return len(r.Members) >= r.MaxMembers
}

// RoomMember is one membership row: a user in a room with a role.
// The capacity limit is checked against these rows at join time only.
type RoomMember struct {
	RoomID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role     string    `gorm:"size:10;not null;default:'member'"`
	JoinedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
