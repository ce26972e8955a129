package app

import (
	"context"
	"time"

	catalog "engagement_service/internal/catalog/domain"
	"engagement_service/internal/notify"
	"engagement_service/internal/playlist/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockPlaylistRepository Mock PlaylistRepository
type MockPlaylistRepository struct {
	mock.Mock
}

func (m *MockPlaylistRepository) playlist(args mock.Arguments) (*domain.Playlist, error) {
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}

// Create moke create playlist
func (m *MockPlaylistRepository) Create(ctx context.Context, p *domain.Playlist) (primitive.ObjectID, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

// FindByID moke find playlist
func (m *MockPlaylistRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	return m.playlist(m.Called(ctx, id))
}

// ListByOwner moke user playlists
func (m *MockPlaylistRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]domain.PlaylistSummary, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.PlaylistSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetDetail moke playlist detail
func (m *MockPlaylistRepository) GetDetail(ctx context.Context, id primitive.ObjectID) (*domain.PlaylistDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.PlaylistDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

// AddVideo moke $addToSet
func (m *MockPlaylistRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID, now time.Time) (*domain.Playlist, error) {
	return m.playlist(m.Called(ctx, id, videoID, now))
}

// RemoveVideo moke $pull
func (m *MockPlaylistRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID, now time.Time) (*domain.Playlist, error) {
	return m.playlist(m.Called(ctx, id, videoID, now))
}

// Update moke update name/description
func (m *MockPlaylistRepository) Update(ctx context.Context, id primitive.ObjectID, name, description string, now time.Time) (*domain.Playlist, error) {
	return m.playlist(m.Called(ctx, id, name, description, now))
}

// Delete moke delete playlist
func (m *MockPlaylistRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes moke index
func (m *MockPlaylistRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockVideoRepository Mock VideoRepository
type MockVideoRepository struct {
	mock.Mock
}

// FindByID moke find video
func (m *MockVideoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*catalog.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPublisher Mock notify.Publisher
type MockPublisher struct {
	mock.Mock
}

// Publish moke publisher
func (m *MockPublisher) Publish(ctx context.Context, e notify.Event) error {
	return m.Called(ctx, e).Error(0)
}
