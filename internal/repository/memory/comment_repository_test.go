package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository()
	post := uuid.New()
	other := uuid.New()

	first := &domain.Comment{Content: "first", AuthorID: "u1", PostID: post}
	second := &domain.Comment{Content: "second", AuthorID: "u2", PostID: other}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	byPost, err := repo.FindByPost(ctx, post)
	require.NoError(t, err)
	require.Len(t, byPost, 1)
	assert.Equal(t, "first", byPost[0].Content)

	none, err := repo.FindByPost(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	// update touches content only
	ok, err := repo.Update(ctx, &domain.Comment{ID: first.ID, Content: "changed", AuthorID: "x", PostID: other})
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Content)
	assert.Equal(t, "u1", got.AuthorID)
	assert.Equal(t, post, got.PostID)

	// returned records are copies
	got.Content = "mutated"
	again, _ := repo.FindByID(ctx, first.ID)
	assert.Equal(t, "changed", again.Content)

	ok, err = repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := repo.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	missing, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err = repo.Update(ctx, &domain.Comment{ID: first.ID, Content: "ghost"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommentRepositoryConcurrentSave(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository()
	post := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Save(ctx, &domain.Comment{Content: "hello", AuthorID: "u1", PostID: post})
		}()
	}
	wg.Wait()

	all, err := repo.FindByPost(ctx, post)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
