package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soumia987/massagerie-app/internal/database"
	"github.com/soumia987/massagerie-app/internal/handlers/dto"
	"github.com/soumia987/massagerie-app/internal/middleware"
	"github.com/soumia987/massagerie-app/internal/models"
	"github.com/soumia987/massagerie-app/internal/roomcode"
)

type RoomHandler struct {
	db *database.Database
}

func NewRoomHandler(db *database.Database) *RoomHandler {
	return &RoomHandler{db: db}
}

// CreateRoom creates a room with the caller as its admin member. A
// missing invite code is generated, a supplied one must be free.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "details": err.Error()})
		return
	}

	var code string
	if req.Code != "" {
		code = roomcode.Normalize(req.Code)
		taken, err := h.db.CodeTaken(code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création du salon"})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"message": "Ce code de salon est déjà utilisé"})
			return
		}
	} else {
		var err error
		code, err = h.db.UniqueCode()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création du salon"})
			return
		}
	}

	maxMembers := req.MaxMembers
	if maxMembers == 0 {
		maxMembers = models.DefaultMaxMembers
	}

	now := time.Now()
	room := &models.Room{
		Name:         req.Name,
		Code:         code,
		Description:  req.Description,
		CreatedBy:    userID,
		MaxMembers:   maxMembers,
		IsPrivate:    req.IsPrivate,
		LastActivity: now,
		Members: []models.RoomMember{
			{UserID: userID, Role: models.RoleAdmin, JoinedAt: now},
		},
	}

	if err := h.db.CreateRoom(room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création du salon"})
		return
	}

	fullRoom, err := h.db.GetRoom(room.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création du salon"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Salon créé avec succès",
		"room":    formatRoomResponse(fullRoom),
	})
}

// JoinRoom adds the caller to the room addressed by an invite code.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides", "details": err.Error()})
		return
	}

	room, err := h.db.GetRoomByCode(req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Salon introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la connexion au salon"})
		return
	}

	if room.HasMember(userID) {
		c.JSON(http.StatusConflict, gin.H{"message": "Vous êtes déjà membre de ce salon"})
		return
	}

	// Best-effort capacity check against the rows just loaded; two
	// concurrent joins can still both pass it.
	if room.IsFull() {
		c.JSON(http.StatusConflict, gin.H{"message": "Le salon est complet"})
		return
	}

	if err := h.db.AddMember(room.ID, userID, models.RoleMember); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la connexion au salon"})
		return
	}

	fullRoom, err := h.db.GetRoom(room.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la connexion au salon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vous avez rejoint le salon",
		"room":    formatRoomResponse(fullRoom),
	})
}

// GetMyRooms lists every room the caller belongs to.
func (h *RoomHandler) GetMyRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	rooms, err := h.db.GetUserRooms(userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des salons"})
		return
	}

	result := make([]gin.H, len(rooms))
	for i := range rooms {
		result[i] = formatRoomResponse(&rooms[i])
	}

	c.JSON(http.StatusOK, gin.H{"rooms": result})
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"room": formatRoomResponse(room)})
}

// LeaveRoom removes the caller's membership. Leaving a room you are
// not in succeeds silently; the last admin may leave without handing
// the role over.
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	roomID := c.Param("roomId")

	room, err := h.db.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Salon introuvable"})
		return
	}

	if err := h.db.RemoveMember(room.ID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors du départ du salon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vous avez quitté le salon"})
}

func formatUserInfo(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
	}
}

func formatRoomResponse(room *models.Room) gin.H {
	members := make([]gin.H, len(room.Members))
	for i, m := range room.Members {
		members[i] = gin.H{
			"user":     formatUserInfo(&m.User),
			"role":     m.Role,
			"joinedAt": m.JoinedAt,
		}
	}

	return gin.H{
		"id":           room.ID,
		"name":         room.Name,
		"code":         room.Code,
		"description":  room.Description,
		"creator":      formatUserInfo(&room.Creator),
		"maxMembers":   room.MaxMembers,
		"isPrivate":    room.IsPrivate,
		"lastActivity": room.LastActivity,
		"createdAt":    room.CreatedAt,
		"members":      members,
	}
}
