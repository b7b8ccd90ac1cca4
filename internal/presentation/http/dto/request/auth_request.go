package request

// LoginRequest represents a PIN login
type LoginRequest struct {
	PIN string `json:"pin" binding:"required,len=4,numeric"`
}

// AuthorizeRequest carries the admin PIN that releases a waiting action
type AuthorizeRequest struct {
	PIN string `json:"pin" binding:"required,len=4,numeric"`
}
