package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soumia987/massagerie-app/internal/database"
	"github.com/soumia987/massagerie-app/internal/middleware"
	"github.com/soumia987/massagerie-app/internal/models"
)

const testUserHeader = "X-Test-User"

func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	d := database.NewDatabase(db)
	if err := d.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return d
}

// newTestRouter mirrors the server's route table with authentication
// replaced by a header carrying the caller's id.
func newTestRouter(d *database.Database) *gin.Engine {
	gin.SetMode(gin.TestMode)

	authMW := func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(testUserHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentification requise"})
			return
		}
		c.Set(middleware.UserIDKey, id)
		c.Next()
	}

	roomH := NewRoomHandler(d)
	msgH := NewMessageHandler(d)

	r := gin.New()

	rooms := r.Group("/api/rooms", authMW)
	{
		rooms.POST("/create", roomH.CreateRoom)
		rooms.POST("/join", roomH.JoinRoom)
		rooms.GET("/my-rooms", roomH.GetMyRooms)
		rooms.GET("/:roomId", roomH.GetRoom)
		rooms.POST("/:roomId/leave", roomH.LeaveRoom)
	}

	messages := r.Group("/api/messages", authMW)
	{
		messages.GET("/room/:roomId", msgH.GetRoomMessages)
		messages.POST("/send", msgH.SendMessage)
		messages.POST("/:messageId/read", msgH.MarkRead)
		messages.PUT("/:messageId", msgH.UpdateMessage)
		messages.DELETE("/:messageId", msgH.DeleteMessage)
	}

	return r
}

func createTestUser(t *testing.T, d *database.Database, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := d.SaveUser(user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(testUserHeader, userID.String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func createRoomForTest(t *testing.T, r *gin.Engine, creator uuid.UUID, body map[string]any) map[string]any {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/rooms/create", body, creator)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating room, got %d: %s", w.Code, w.Body.String())
	}
	room, ok := decodeBody(t, w)["room"].(map[string]any)
	if !ok {
		t.Fatalf("expected room in response, got %s", w.Body.String())
	}
	return room
}
