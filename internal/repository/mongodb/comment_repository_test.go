package mongodb

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

const ns = "comments_test.comments"

func commentDoc(id, post uuid.UUID, content, author string) bson.D {
	return bson.D{
		{Key: "_id", Value: id.String()},
		{Key: "content", Value: content},
		{Key: "author_id", Value: author},
		{Key: "post_id", Value: post.String()},
		{Key: "seq", Value: int64(1)},
	}
}

func TestMongoCommentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save", func(mt *mtest.T) {
		repo := &CommentRepository{Comments: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := uuid.New()
		c := &domain.Comment{Content: "Nice image", AuthorID: "1", PostID: post}
		require.NoError(mt, repo.Save(context.Background(), c))
		assert.NotEqual(mt, uuid.Nil, c.ID)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := &CommentRepository{Comments: mt.Coll}
		id, post := uuid.New(), uuid.New()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, commentDoc(id, post, "Cool", "2")))

		c, err := repo.FindByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, &domain.Comment{ID: id, Content: "Cool", AuthorID: "2", PostID: post}, c)
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		repo := &CommentRepository{Comments: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		c, err := repo.FindByID(context.Background(), uuid.New())
		require.NoError(mt, err)
		assert.Nil(mt, c)
	})

	mt.Run("find by post", func(mt *mtest.T) {
		repo := &CommentRepository{Comments: mt.Coll}
		post := uuid.New()
		a, b := uuid.New(), uuid.New()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, commentDoc(a, post, "Nice image", "1"))
		second := mtest.CreateCursorResponse(1, ns, mtest.NextBatch, commentDoc(b, post, "Cool", "2"))
		end := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, second, end)

		comments, err := repo.FindByPost(context.Background(), post)
		require.NoError(mt, err)
		require.Len(mt, comments, 2)
		assert.Equal(mt, a, comments[0].ID)
		assert.Equal(mt, b, comments[1].ID)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := &CommentRepository{Comments: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		ok, err := repo.Update(context.Background(), &domain.Comment{ID: uuid.New(), Content: "Updated"})
		require.NoError(mt, err)
		assert.True(mt, ok)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := &CommentRepository{Comments: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		ok, err := repo.Delete(context.Background(), uuid.New())
		require.NoError(mt, err)
		assert.False(mt, ok)
	})

	mt.Run("count", func(mt *mtest.T) {
		repo := &CommentRepository{Comments: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		n, err := repo.Count(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, 3, n)
	})

	mt.Run("write error", func(mt *mtest.T) {
		repo := &CommentRepository{Comments: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Save(context.Background(), &domain.Comment{Content: "Nice image", AuthorID: "1", PostID: uuid.New()})
		assert.Error(mt, err)
	})
}

func TestNextSeqIncreases(t *testing.T) {
	prev := nextSeq()
	for i := 0; i < 1000; i++ {
		next := nextSeq()
		assert.Greater(t, next, prev)
		prev = next
	}
}
