package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

const selectColumns = `SELECT id, content, author_id, post_id FROM comments`

type commentRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewCommentRepository(db *dbpg.DB, strategy retry.Strategy) domain.CommentRepository {
	return &commentRepository{db: db, strategy: strategy}
}

// Save inserts the comment and fills in the id generated by the database.
// Inserts are not retried: a retry after a lost acknowledgement would
// create a duplicate.
func (r *commentRepository) Save(ctx context.Context, c *domain.Comment) error {
	query := `
		INSERT INTO comments (content, author_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.Master.QueryRowContext(ctx, query, c.Content, c.AuthorID, c.PostID).Scan(&c.ID); err != nil {
		zlog.Logger.Error().Err(err).Msg("Save failed")
		return err
	}
	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	c := &domain.Comment{}
	row := r.db.Master.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	if err := row.Scan(&c.ID, &c.Content, &c.AuthorID, &c.PostID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("FindByID failed")
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) FindAll(ctx context.Context) ([]*domain.Comment, error) {
	return r.query(ctx, selectColumns+` ORDER BY created_at ASC, id ASC`)
}

func (r *commentRepository) FindByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	return r.query(ctx, selectColumns+` WHERE post_id = $1 ORDER BY created_at ASC, id ASC`, postID)
}

// Update writes the content column only.
func (r *commentRepository) Update(ctx context.Context, c *domain.Comment) (bool, error) {
	res, err := r.db.ExecWithRetry(ctx, r.strategy, `
		UPDATE comments
		SET content = $2, updated_at = now()
		WHERE id = $1
	`, c.ID, c.Content)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", c.ID.String()).Msg("Update failed")
		return false, err
	}
	return affected(res)
}

// Delete is not retried either: if the first attempt commits but the
// acknowledgement is lost, a second attempt affects no row and the caller
// would see a missing comment instead of a completed delete.
func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.Master.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("Delete failed")
		return false, err
	}
	return affected(res)
}

func (r *commentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Master.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("Exists failed")
		return false, err
	}
	return exists, nil
}

// Count reads from the master so a lagging replica cannot report an empty table.
func (r *commentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.Master.QueryRowContext(ctx, `SELECT count(*) FROM comments`).Scan(&n); err != nil {
		zlog.Logger.Error().Err(err).Msg("Count failed")
		return 0, err
	}
	return n, nil
}

func (r *commentRepository) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Comment, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("query comments failed")
		return nil, err
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c := &domain.Comment{}
		if err := rows.Scan(&c.ID, &c.Content, &c.AuthorID, &c.PostID); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
