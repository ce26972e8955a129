package repository

import (
	"context"

	"engagement_service/internal/comment/domain"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeRepository 只負責留言刪除相關的清除, 按讚本身由 like 服務寫入
type LikeRepository interface {
	DeleteByComment(ctx context.Context, commentID primitive.ObjectID) (int64, error)
	// SweepOrphanLikes 刪除指向不存在留言的按讚
	SweepOrphanLikes(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type likeRepository struct {
	coll *mongo.Collection
}

// NewLikeRepository create a LikeRepository
func NewLikeRepository(db *mongo.Database) LikeRepository {
	return &likeRepository{
		coll: db.Collection(domain.LikeCollection),
	}
}

func (r *likeRepository) DeleteByComment(ctx context.Context, commentID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"comment": commentID})
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete likes of comment")
	}
	return res.DeletedCount, nil
}

func (r *likeRepository) SweepOrphanLikes(ctx context.Context) (int64, error) {
	cur, err := r.coll.Aggregate(ctx, OrphanLikesPipeline())
	if err != nil {
		return 0, pkgerrors.Wrap(err, "aggregate orphan likes")
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, pkgerrors.Wrap(err, "decode orphan likes")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete orphan likes")
	}
	return res.DeletedCount, nil
}

// EnsureIndexes 讚數 lookup 用 comment 欄位
func (r *likeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "comment", Value: 1}},
	})
	return pkgerrors.Wrap(err, "create like index")
}
