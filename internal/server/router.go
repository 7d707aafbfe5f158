package server

import (
	"github.com/gin-gonic/gin"

	"github.com/soumia987/massagerie-app/internal/handlers"
)

func APIEndpoints(r *gin.Engine, authMW gin.HandlerFunc, authH *handlers.AuthHandler, roomH *handlers.RoomHandler, msgH *handlers.MessageHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

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
}
