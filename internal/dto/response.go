package dto

import "github.com/OlivierMantz/CommentAPI/internal/domain"

type CommentResponse struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	AuthorID string `json:"author_id"`
	PostID   string `json:"post_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewCommentResponse(c *domain.Comment) *CommentResponse {
	if c == nil {
		return nil
	}
	return &CommentResponse{
		ID:       c.ID.String(),
		Content:  c.Content,
		AuthorID: c.AuthorID,
		PostID:   c.PostID.String(),
	}
}

func NewCommentResponses(list []*domain.Comment) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCommentResponse(c))
	}
	return out
}
