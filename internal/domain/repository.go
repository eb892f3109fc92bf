package domain

import (
	"context"

	"github.com/google/uuid"
)

// CommentRepository is the durable comment store.
//
// FindByID returns (nil, nil) when the comment does not exist. Update and
// Delete report whether a record was affected. Count always reads the
// primary copy of the data.
type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	FindAll(ctx context.Context) ([]*Comment, error)
	FindByPost(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	Update(ctx context.Context, comment *Comment) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}
