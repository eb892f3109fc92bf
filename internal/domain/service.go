package domain

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=../mock/comment_service.go -package=mock

type CommentService interface {
	ListAll(ctx context.Context) ([]*Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	Create(ctx context.Context, postID uuid.UUID, content, authorID string) (*Comment, error)
	Update(ctx context.Context, id uuid.UUID, content string, caller Caller) error
	Delete(ctx context.Context, id uuid.UUID, caller Caller) error
}
