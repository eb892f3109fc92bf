package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

var (
	firstPost  = uuid.MustParse("15db589f-d535-4180-b94b-7b3d23f67a70")
	secondPost = uuid.MustParse("1eff8b0d-6e89-49c5-9b1e-7e940368553c")
)

// Comments are the sample comments inserted into an empty store.
func Comments() []domain.Comment {
	return []domain.Comment{
		{Content: "Nice image", AuthorID: "1", PostID: firstPost},
		{Content: "Cool", AuthorID: "2", PostID: firstPost},
		{Content: "Beautiful", AuthorID: "2", PostID: secondPost},
	}
}

// Run inserts the sample comments when the store holds none. It returns the
// number of comments inserted.
func Run(ctx context.Context, repo domain.CommentRepository) (int, error) {
	existing, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: count comments: %w", err)
	}
	if existing > 0 {
		zlog.Logger.Info().Int("count", existing).Msg("store not empty, skipping seed")
		return 0, nil
	}

	inserted := 0
	for _, c := range Comments() {
		c := c
		if err := domain.ValidateContent(c.Content); err != nil {
			return inserted, fmt.Errorf("seed: %w", err)
		}
		if err := repo.Save(ctx, &c); err != nil {
			return inserted, fmt.Errorf("seed: save comment: %w", err)
		}
		inserted++
	}

	zlog.Logger.Info().Int("count", inserted).Msg("seeded comments")
	return inserted, nil
}
