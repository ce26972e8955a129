package repository

import (
	"context"
	"errors"

	"engagement_service/internal/catalog/domain"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// VideoRepository read only access to videos
type VideoRepository interface {
	// FindByID 不存在時回傳 nil, nil
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error)
}

type videoRepository struct {
	coll *mongo.Collection
}

// NewVideoRepository create a VideoRepository
func NewVideoRepository(db *mongo.Database) VideoRepository {
	return &videoRepository{
		coll: db.Collection(domain.VideoCollection),
	}
}

func (r *videoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Video, error) {
	var v domain.Video
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find video")
	}
	return &v, nil
}
