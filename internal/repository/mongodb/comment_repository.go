package mongodb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

const CollectionName = "comments"

type CommentRepository struct {
	Comments *mongo.Collection
}

var _ domain.CommentRepository = (*CommentRepository)(nil)

// item is the stored document. Ids are kept as canonical uuid strings.
type item struct {
	ID       string `bson:"_id"`
	Content  string `bson:"content"`
	AuthorID string `bson:"author_id"`
	PostID   string `bson:"post_id"`
	Seq      int64  `bson:"seq"`
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{Comments: db.Collection(CollectionName)}
}

// EnsureIndexes creates the post_id index used by FindByPost.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Comments.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "seq", Value: 1}},
	})
	return err
}

func (r *CommentRepository) Save(ctx context.Context, c *domain.Comment) error {
	id := uuid.New()
	doc := item{
		ID:       id.String(),
		Content:  c.Content,
		AuthorID: c.AuthorID,
		PostID:   c.PostID.String(),
		Seq:      nextSeq(),
	}
	if _, err := r.Comments.InsertOne(ctx, doc); err != nil {
		zlog.Logger.Error().Err(err).Msg("InsertOne failed")
		return err
	}
	c.ID = id
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var doc item
	err := r.Comments.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("FindOne failed")
		return nil, err
	}
	return doc.toDomain()
}

func (r *CommentRepository) FindAll(ctx context.Context) ([]*domain.Comment, error) {
	return r.find(ctx, bson.M{})
}

func (r *CommentRepository) FindByPost(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	return r.find(ctx, bson.M{"post_id": postID.String()})
}

// Update sets the content field only.
func (r *CommentRepository) Update(ctx context.Context, c *domain.Comment) (bool, error) {
	res, err := r.Comments.UpdateOne(ctx,
		bson.M{"_id": c.ID.String()},
		bson.M{"$set": bson.M{"content": c.Content}},
	)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", c.ID.String()).Msg("UpdateOne failed")
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.Comments.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg("DeleteOne failed")
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *CommentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

func (r *CommentRepository) Count(ctx context.Context) (int, error) {
	n, err := r.Comments.CountDocuments(ctx, bson.M{})
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("CountDocuments failed")
		return 0, err
	}
	return int(n), nil
}

func (r *CommentRepository) find(ctx context.Context, filter bson.M) ([]*domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cur, err := r.Comments.Find(ctx, filter, opts)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("Find failed")
		return nil, err
	}
	defer cur.Close(ctx)

	comments := make([]*domain.Comment, 0)
	for cur.Next(ctx) {
		var doc item
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		c, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (i item) toDomain() (*domain.Comment, error) {
	id, err := uuid.Parse(i.ID)
	if err != nil {
		return nil, err
	}
	postID, err := uuid.Parse(i.PostID)
	if err != nil {
		return nil, err
	}
	return &domain.Comment{
		ID:       id,
		Content:  i.Content,
		AuthorID: i.AuthorID,
		PostID:   postID,
	}, nil
}
