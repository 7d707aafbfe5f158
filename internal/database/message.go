package database

import (
	"time"

	"github.com/google/uuid"

	"github.com/soumia987/massagerie-app/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

func (d *Database) GetMessage(id string) (*models.Message, error) {
	var message models.Message
	err := d.db.
		Preload("Sender").
		Preload("ReplyTo.Sender").
		Preload("ReadBy").
		First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (d *Database) UpdateMessage(message *models.Message) error {
	return d.db.Save(message).Error
}

func (d *Database) DeleteMessage(id string) error {
	if err := d.db.Delete(&models.MessageRead{}, "message_id = ?", id).Error; err != nil {
		return err
	}
	return d.db.Delete(&models.Message{}, "id = ?", id).Error
}

// GetRoomMessages returns one page of a room's history in chronological
// order, plus the total message count for pagination.
func (d *Database) GetRoomMessages(roomID string, page, limit int) ([]models.Message, int64, error) {
	var total int64
	if err := d.db.Model(&models.Message{}).Where("room_id = ?", roomID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := d.db.
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Sender").
		Preload("ReplyTo.Sender").
		Preload("ReadBy").
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	// Newest-first from the store, oldest-first for the client.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, total, nil
}

// MarkRead records a read receipt for the user. Already-read messages
// are left untouched, so repeated calls keep a single row.
func (d *Database) MarkRead(messageID, userID uuid.UUID) error {
	read := models.MessageRead{MessageID: messageID, UserID: userID}
	return d.db.
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Attrs(models.MessageRead{ReadAt: time.Now()}).
		FirstOrCreate(&read).Error
}
