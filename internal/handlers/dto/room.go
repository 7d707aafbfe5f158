package dto

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Code        string `json:"code" binding:"omitempty,alphanum,min=4,max=8"`
	Description string `json:"description" binding:"omitempty,max=200"`
	MaxMembers  int    `json:"maxMembers" binding:"omitempty,min=2,max=100"`
	IsPrivate   bool   `json:"isPrivate"`
}

type JoinRoomRequest struct {
	Code string `json:"code" binding:"required,alphanum,min=4,max=8"`
}
