package dto

// CommentRequest is the body of both create and update calls.
type CommentRequest struct {
	Content string `json:"content" binding:"required,min=3,max=500"`
}
