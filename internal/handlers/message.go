package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soumia987/massagerie-app/internal/database"
	"github.com/soumia987/massagerie-app/internal/handlers/dto"
	"github.com/soumia987/massagerie-app/internal/middleware"
	"github.com/soumia987/massagerie-app/internal/models"
)

type MessageHandler struct {
	db *database.Database
}

func NewMessageHandler(db *database.Database) *MessageHandler {
	return &MessageHandler{db: db}
}

// GetRoomMessages returns one page of a room's history, oldest first,
// with pagination metadata.
func (h *MessageHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	roomID := c.Param("roomId")

	room, err := h.db.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Salon introuvable"})
		return
	}

	if !room.HasMember(userID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Vous n'êtes pas membre de ce salon"})
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	messages, total, err := h.db.GetRoomMessages(roomID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des messages"})
		return
	}

	result := make([]gin.H, len(messages))
	for i := range messages {
		result[i] = formatMessageResponse(&messages[i])
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	c.JSON(http.StatusOK, gin.H{
		"messages": result,
		"pagination": gin.H{
			"currentPage":   page,
			"totalPages":    totalPages,
			"totalMessages": total,
			"hasMore":       int64((page-1)*limit+len(messages)) < total,
		},
	})
}

// SendMessage stores a message in a room the caller belongs to and
// refreshes the room's activity timestamp.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "details": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Le contenu du message ne peut pas être vide"})
		return
	}

	room, err := h.db.GetRoom(req.RoomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Salon introuvable"})
		return
	}

	if !room.HasMember(userID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Vous n'êtes pas membre de ce salon"})
		return
	}

	msgType := req.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	message := &models.Message{
		RoomID:   room.ID,
		SenderID: userID,
		Content:  content,
		Type:     msgType,
	}

	if req.ReplyTo != "" {
		replyToID, err := uuid.Parse(req.ReplyTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
			return
		}
		message.ReplyToID = &replyToID
	}

	if err := h.db.SaveMessage(message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de l'envoi du message"})
		return
	}

	if err := h.db.TouchActivity(room.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de l'envoi du message"})
		return
	}

	fullMessage, err := h.db.GetMessage(message.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de l'envoi du message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message envoyé",
		"data":    formatMessageResponse(fullMessage),
	})
}

// MarkRead records a read receipt for the caller. Calling it again for
// the same message succeeds without adding a second receipt.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	messageID := c.Param("messageId")

	message, err := h.db.GetMessage(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors du marquage du message"})
		return
	}

	if err := h.db.MarkRead(message.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors du marquage du message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marqué comme lu"})
}

// UpdateMessage edits a message's content. Only the sender may edit;
// the edited flag never goes back to false.
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	messageID := c.Param("messageId")

	var req dto.EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "details": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Le contenu du message ne peut pas être vide"})
		return
	}

	message, err := h.db.GetMessage(messageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Message introuvable"})
		return
	}

	if message.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Vous ne pouvez modifier que vos propres messages"})
		return
	}

	now := time.Now()
	message.Content = content
	message.Edited = true
	message.EditedAt = &now

	if err := h.db.UpdateMessage(message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la modification du message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message modifié",
		"data":    formatMessageResponse(message),
	})
}

// DeleteMessage permanently removes one of the caller's own messages.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	messageID := c.Param("messageId")

	message, err := h.db.GetMessage(messageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Message introuvable"})
		return
	}

	if message.SenderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Vous ne pouvez supprimer que vos propres messages"})
		return
	}

	if err := h.db.DeleteMessage(messageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression du message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message supprimé"})
}

func formatMessageResponse(msg *models.Message) gin.H {
	readBy := make([]dto.ReadReceipt, len(msg.ReadBy))
	for i, r := range msg.ReadBy {
		readBy[i] = dto.ReadReceipt{UserID: r.UserID, ReadAt: r.ReadAt}
	}

	response := gin.H{
		"id":        msg.ID,
		"roomId":    msg.RoomID,
		"sender":    formatUserInfo(&msg.Sender),
		"content":   msg.Content,
		"type":      msg.Type,
		"edited":    msg.Edited,
		"readBy":    readBy,
		"createdAt": msg.CreatedAt,
	}

	if msg.EditedAt != nil {
		response["editedAt"] = msg.EditedAt
	}

	if msg.ReplyTo != nil {
		response["replyTo"] = gin.H{
			"id":      msg.ReplyTo.ID,
			"sender":  formatUserInfo(&msg.ReplyTo.Sender),
			"content": msg.ReplyTo.Content,
			"type":    msg.ReplyTo.Type,
		}
	}

	return response
}
