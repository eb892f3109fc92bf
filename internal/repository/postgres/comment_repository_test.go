package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

var columns = []string{"id", "content", "author_id", "post_id"}

func newRepo(t *testing.T) (domain.CommentRepository, sqlmock.Sqlmock) {
	t.Helper()
	return newRepoWithAttempts(t, 1)
}

func newRepoWithAttempts(t *testing.T, attempts int) (domain.CommentRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	strategy := retry.Strategy{Attempts: attempts, Delay: time.Millisecond, Backoff: 1}
	return NewCommentRepository(&dbpg.DB{Master: mockDB}, strategy), mock
}

func TestSave(t *testing.T) {
	repo, mock := newRepo(t)
	id, post := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments (content, author_id, post_id)")).
		WithArgs("Nice image", "u1", post).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	c := &domain.Comment{Content: "Nice image", AuthorID: "u1", PostID: post}
	require.NoError(t, repo.Save(context.Background(), c))
	assert.Equal(t, id, c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveError(t *testing.T) {
	repo, mock := newRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO comments")).WillReturnError(boom)

	err := repo.Save(context.Background(), &domain.Comment{Content: "Nice image", AuthorID: "u1", PostID: uuid.New()})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		id, post := uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "Cool", "u2", post.String()))

		c, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, &domain.Comment{ID: id, Content: "Cool", AuthorID: "u2", PostID: post}, c)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepo(t)
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE id = $1")).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		c, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestFindByPost(t *testing.T) {
	repo, mock := newRepo(t)
	post := uuid.New()
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments WHERE post_id = $1")).
		WithArgs(post).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(a.String(), "Nice image", "1", post.String()).
			AddRow(b.String(), "Cool", "2", post.String()))

	comments, err := repo.FindByPost(context.Background(), post)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, a, comments[0].ID)
	assert.Equal(t, "Cool", comments[1].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllEmpty(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM comments ORDER BY")).
		WillReturnRows(sqlmock.NewRows(columns))

	comments, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments")).
		WithArgs(id, "Updated").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE comments")).
		WithArgs(id, "Updated").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Update(context.Background(), &domain.Comment{ID: id, Content: "Updated", AuthorID: "ignored"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Update(context.Background(), &domain.Comment{ID: id, Content: "Updated"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIsNotRetried(t *testing.T) {
	repo, mock := newRepoWithAttempts(t, 3)
	id := uuid.New()
	badConn := errors.New("bad connection")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1")).
		WithArgs(id).
		WillReturnError(badConn)

	ok, err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, badConn)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM comments")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUsesMaster(t *testing.T) {
	masterDB, master, err := sqlmock.New()
	require.NoError(t, err)
	defer masterDB.Close()
	replicaDB, replica, err := sqlmock.New()
	require.NoError(t, err)
	defer replicaDB.Close()

	repo := NewCommentRepository(&dbpg.DB{Master: masterDB, Slaves: []*sql.DB{replicaDB}},
		retry.Strategy{Attempts: 1, Delay: time.Millisecond, Backoff: 1})

	master.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM comments")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, master.ExpectationsWereMet())
	assert.NoError(t, replica.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
