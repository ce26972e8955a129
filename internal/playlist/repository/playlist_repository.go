package repository

import (
	"context"
	"errors"
	"time"

	"engagement_service/internal/playlist/domain"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlaylistRepository definition playlist store access; lookups return nil, nil when nothing matched
type PlaylistRepository interface {
	Create(ctx context.Context, p *domain.Playlist) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.PlaylistSummary, error)
	GetDetail(ctx context.Context, id primitive.ObjectID) (*domain.PlaylistDetail, error)
	AddVideo(ctx context.Context, id, videoID primitive.ObjectID, now time.Time) (*domain.Playlist, error)
	RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID, now time.Time) (*domain.Playlist, error)
	Update(ctx context.Context, id primitive.ObjectID, name, description string, now time.Time) (*domain.Playlist, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type playlistRepository struct {
	coll *mongo.Collection
}

// NewPlaylistRepository create a PlaylistRepository
func NewPlaylistRepository(db *mongo.Database) PlaylistRepository {
	return &playlistRepository{
		coll: db.Collection(domain.PlaylistCollection),
	}
}

func (r *playlistRepository) Create(ctx context.Context, p *domain.Playlist) (primitive.ObjectID, error) {
	if p.Videos == nil {
		p.Videos = []primitive.ObjectID{}
	}
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, pkgerrors.Wrap(err, "insert playlist")
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, pkgerrors.New("unexpected inserted id type")
	}
	return id, nil
}

func (r *playlistRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	var p domain.Playlist
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find playlist")
	}
	return &p, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.PlaylistSummary, error) {
	cur, err := r.coll.Aggregate(ctx, UserPlaylistsPipeline(owner))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "aggregate user playlists")
	}
	defer cur.Close(ctx)

	out := []domain.PlaylistSummary{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, pkgerrors.Wrap(err, "decode user playlists")
	}
	return out, nil
}

func (r *playlistRepository) GetDetail(ctx context.Context, id primitive.ObjectID) (*domain.PlaylistDetail, error) {
	cur, err := r.coll.Aggregate(ctx, PlaylistDetailPipeline(id))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "aggregate playlist detail")
	}
	defer cur.Close(ctx)

	var out []domain.PlaylistDetail
	if err := cur.All(ctx, &out); err != nil {
		return nil, pkgerrors.Wrap(err, "decode playlist detail")
	}
	if len(out) == 0 {
		return nil, nil
	}
	if out[0].Videos == nil {
		out[0].Videos = []domain.PlaylistVideo{}
	}
	return &out[0], nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID, now time.Time) (*domain.Playlist, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$addToSet": bson.M{"videos": videoID},
		"$set":      bson.M{"updatedAt": now},
	})
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID, now time.Time) (*domain.Playlist, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$pull": bson.M{"videos": videoID},
		"$set":  bson.M{"updatedAt": now},
	})
}

func (r *playlistRepository) Update(ctx context.Context, id primitive.ObjectID, name, description string, now time.Time) (*domain.Playlist, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"name": name, "description": description, "updatedAt": now},
	})
}

func (r *playlistRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*domain.Playlist, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Playlist
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "update playlist")
	}
	return &p, nil
}

func (r *playlistRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, pkgerrors.Wrap(err, "delete playlist")
	}
	return res.DeletedCount, nil
}

// EnsureIndexes 使用者清單依 owner 查詢
func (r *playlistRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return pkgerrors.Wrap(err, "create playlist index")
}
