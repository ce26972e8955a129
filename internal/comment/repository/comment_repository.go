package repository

import (
	"context"
	"errors"
	"time"

	"engagement_service/internal/comment/domain"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository definition comment store access
type CommentRepository interface {
	// ListByVideo 回傳這一頁的留言與總筆數
	ListByVideo(ctx context.Context, videoID primitive.ObjectID, viewerID *primitive.ObjectID, q domain.PageQuery) ([]domain.CommentView, int, error)
	Insert(ctx context.Context, c *domain.Comment) (primitive.ObjectID, error)
	// FindByID 不存在時回傳 nil, nil
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error)
	// UpdateContent 只改 content, 沒有命中時回傳 nil, nil
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string, now time.Time) (*domain.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type commentRepository struct {
	coll *mongo.Collection
}

// NewCommentRepository create a CommentRepository
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{
		coll: db.Collection(domain.CommentCollection),
	}
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, viewerID *primitive.ObjectID, q domain.PageQuery) ([]domain.CommentView, int, error) {
	cur, err := r.coll.Aggregate(ctx, CommentFeedPipeline(videoID, viewerID, q))
	if err != nil {
		return nil, 0, pkgerrors.Wrap(err, "aggregate comment feed")
	}
	defer cur.Close(ctx)

	var out []struct {
		Metadata []struct {
			Total int `bson:"total"`
		} `bson:"metadata"`
		Items []domain.CommentView `bson:"items"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, pkgerrors.Wrap(err, "decode comment feed")
	}

	// $facet 永遠只回一份文件
	if len(out) == 0 {
		return []domain.CommentView{}, 0, nil
	}
	total := 0
	if len(out[0].Metadata) > 0 {
		total = out[0].Metadata[0].Total
	}
	return out[0].Items, total, nil
}

func (r *commentRepository) Insert(ctx context.Context, c *domain.Comment) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return primitive.NilObjectID, pkgerrors.Wrap(err, "insert comment")
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, pkgerrors.New("unexpected inserted id type")
	}
	return id, nil
}

func (r *commentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	var c domain.Comment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find comment")
	}
	return &c, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string, now time.Time) (*domain.Comment, error) {
	update := bson.M{"$set": bson.M{"content": content, "updatedAt": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c domain.Comment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "update comment")
	}
	return &c, nil
}

func (r *commentRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete comment")
	}
	return res.DeletedCount, nil
}

// EnsureIndexes 留言列表依 video + createdAt 查詢
func (r *commentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return pkgerrors.Wrap(err, "create comment index")
}
