package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

// CommentRepository keeps comments in process memory, in insertion order.
type CommentRepository struct {
	mu       sync.RWMutex
	order    []uuid.UUID
	comments map[uuid.UUID]domain.Comment
}

var _ domain.CommentRepository = (*CommentRepository)(nil)

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		order:    make([]uuid.UUID, 0, 8),
		comments: make(map[uuid.UUID]domain.Comment),
	}
}

func (r *CommentRepository) Save(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.New()
	r.comments[c.ID] = *c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *CommentRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CommentRepository) FindAll(_ context.Context) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Comment, 0, len(r.order))
	for _, id := range r.order {
		c := r.comments[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r *CommentRepository) FindByPost(_ context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Comment, 0)
	for _, id := range r.order {
		c := r.comments[id]
		if c.PostID != postID {
			continue
		}
		out = append(out, &c)
	}
	return out, nil
}

// Update rewrites the content of an existing comment.
func (r *CommentRepository) Update(_ context.Context, c *domain.Comment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.comments[c.ID]
	if !ok {
		return false, nil
	}
	stored.Content = c.Content
	r.comments[c.ID] = stored
	return true, nil
}

func (r *CommentRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return false, nil
	}
	delete(r.comments, id)
	for i := range r.order {
		if r.order[i] != id {
			continue
		}
		copy(r.order[i:], r.order[i+1:])
		r.order = r.order[:len(r.order)-1]
		break
	}
	return true, nil
}

func (r *CommentRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.comments[id]
	return ok, nil
}

func (r *CommentRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.comments), nil
}
