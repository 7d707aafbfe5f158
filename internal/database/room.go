package database

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/soumia987/massagerie-app/internal/models"
	"github.com/soumia987/massagerie-app/internal/roomcode"
)

var ErrCodeGeneration = errors.New("failed to generate a unique room code after multiple attempts")

const codeAttempts = 5

// CreateRoom persists the room together with its initial member rows.
func (d *Database) CreateRoom(room *models.Room) error {
	return d.db.Create(room).Error
}

func (d *Database) GetRoom(id string) (*models.Room, error) {
	var room models.Room
	err := d.db.
		Preload("Members.User").
		Preload("Creator").
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoomByCode looks a room up by its normalized invite code.
func (d *Database) GetRoomByCode(code string) (*models.Room, error) {
	var room models.Room
	err := d.db.
		Preload("Members.User").
		Preload("Creator").
		First(&room, "code = ?", roomcode.Normalize(code)).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (d *Database) CodeTaken(code string) (bool, error) {
	var count int64
	err := d.db.Model(&models.Room{}).
		Where("code = ?", roomcode.Normalize(code)).
		Count(&count).Error
	return count > 0, err
}

// UniqueCode draws random codes until one is free of collisions.
func (d *Database) UniqueCode() (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := roomcode.New()
		if err != nil {
			return "", err
		}
		taken, err := d.CodeTaken(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

func (d *Database) GetUserRooms(userID string) ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.
		Joins("JOIN room_members rm ON rm.room_id = rooms.id").
		Where("rm.user_id = ?", userID).
		Preload("Members.User").
		Preload("Creator").
		Find(&rooms).Error
	return rooms, err
}

func (d *Database) AddMember(roomID, userID uuid.UUID, role string) error {
	member := models.RoomMember{
		RoomID:   roomID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	return d.db.Create(&member).Error
}

// RemoveMember deletes the membership row if it exists. Removing a
// non-member is a no-op.
func (d *Database) RemoveMember(roomID, userID uuid.UUID) error {
	return d.db.Delete(&models.RoomMember{}, "room_id = ? AND user_id = ?", roomID, userID).Error
}

// TouchActivity refreshes the room's last_activity timestamp.
func (d *Database) TouchActivity(roomID uuid.UUID) error {
	return d.db.Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("last_activity", time.Now()).Error
}
