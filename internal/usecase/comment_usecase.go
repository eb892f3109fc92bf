package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

type commentUsecase struct {
	repo           domain.CommentRepository
	adminCanUpdate bool
}

type Option func(*commentUsecase)

// WithAdminUpdate lets admins edit comments they did not write.
// Deletion always allows the admin override.
func WithAdminUpdate(enabled bool) Option {
	return func(uc *commentUsecase) {
		uc.adminCanUpdate = enabled
	}
}

func NewCommentUsecase(repo domain.CommentRepository, opts ...Option) domain.CommentService {
	uc := &commentUsecase{repo: repo}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *commentUsecase) ListAll(ctx context.Context) ([]*domain.Comment, error) {
	comments, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, infra("list comments", err)
	}
	return nonNil(comments), nil
}

func (uc *commentUsecase) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	comments, err := uc.repo.FindByPost(ctx, postID)
	if err != nil {
		return nil, infra("list comments by post", err)
	}
	return nonNil(comments), nil
}

func (uc *commentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return uc.load(ctx, id)
}

func (uc *commentUsecase) Create(ctx context.Context, postID uuid.UUID, content, authorID string) (*domain.Comment, error) {
	if err := domain.ValidateContent(content); err != nil {
		return nil, err
	}
	if strings.TrimSpace(authorID) == "" {
		return nil, fmt.Errorf("%w: author id is required", domain.ErrValidation)
	}

	c := &domain.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, infra("save comment", err)
	}
	return c, nil
}

func (uc *commentUsecase) Update(ctx context.Context, id uuid.UUID, content string, caller domain.Caller) error {
	existing, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(existing, caller, uc.adminCanUpdate); err != nil {
		return err
	}
	if err := domain.ValidateContent(content); err != nil {
		return err
	}

	// only the content changes; id, author and post stay as stored
	existing.Content = content
	ok, err := uc.repo.Update(ctx, existing)
	if err != nil {
		return infra("update comment", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *commentUsecase) Delete(ctx context.Context, id uuid.UUID, caller domain.Caller) error {
	existing, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(existing, caller, true); err != nil {
		return err
	}

	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return infra("delete comment", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return nil
}

// load re-reads the comment from the store. Existence is always checked
// before authorization.
func (uc *commentUsecase) load(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, infra("find comment", err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return c, nil
}

func authorize(c *domain.Comment, caller domain.Caller, adminOverride bool) error {
	switch {
	case caller.Authenticated() && c.AuthorID == caller.ID:
		return nil
	case adminOverride && caller.IsAdmin():
		return nil
	default:
		return fmt.Errorf("%w: comment %s", domain.ErrUnauthorized, c.ID)
	}
}

func infra(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrInfrastructure, err)
}

func nonNil(comments []*domain.Comment) []*domain.Comment {
	if comments == nil {
		return []*domain.Comment{}
	}
	return comments
}
