package app

import (
	"context"
	"time"

	catalog "engagement_service/internal/catalog/domain"
	"engagement_service/internal/comment/domain"
	"engagement_service/internal/notify"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCommentRepository Mock CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

// ListByVideo moke comment feed
func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, viewerID *primitive.ObjectID, q domain.PageQuery) ([]domain.CommentView, int, error) {
	args := m.Called(ctx, videoID, viewerID, q)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.CommentView), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

// Insert moke insert comment
func (m *MockCommentRepository) Insert(ctx context.Context, c *domain.Comment) (primitive.ObjectID, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

// FindByID moke find comment
func (m *MockCommentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateContent moke update comment
func (m *MockCommentRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, content string, now time.Time) (*domain.Comment, error) {
	args := m.Called(ctx, id, content, now)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete moke delete comment
func (m *MockCommentRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes moke index
func (m *MockCommentRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockLikeRepository Mock LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

// DeleteByComment moke cascade delete
func (m *MockLikeRepository) DeleteByComment(ctx context.Context, commentID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

// SweepOrphanLikes moke sweep
func (m *MockLikeRepository) SweepOrphanLikes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes moke index
func (m *MockLikeRepository) EnsureIndexes(ctx context.Context) error {
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

// MockCleanupScheduler Mock CleanupScheduler
type MockCleanupScheduler struct {
	mock.Mock
}

// Schedule moke schedule cleanup
func (m *MockCleanupScheduler) Schedule(ctx context.Context, commentID string) error {
	return m.Called(ctx, commentID).Error(0)
}

// MockRabbitRepo Mock database.RabbitRepo
type MockRabbitRepo struct {
	mock.Mock
}

// GetRabbit moke channel
func (m *MockRabbitRepo) GetRabbit() *amqp.Channel {
	return nil
}

// Publish moke rabbit publish
func (m *MockRabbitRepo) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}
