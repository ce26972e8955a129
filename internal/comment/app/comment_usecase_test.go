package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	catalog "engagement_service/internal/catalog/domain"
	"engagement_service/internal/comment/domain"
	"engagement_service/internal/notify"
	errprocess "engagement_service/pkg/err"
	"engagement_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type commentMocks struct {
	comments  *MockCommentRepository
	likes     *MockLikeRepository
	videos    *MockVideoRepository
	cleanup   *MockCleanupScheduler
	publisher *MockPublisher
}

func newCommentUseCase(t *testing.T) (CommentUseCase, *commentMocks) {
	t.Helper()
	logger.SetNewNop()

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	old := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = old })

	m := &commentMocks{
		comments:  new(MockCommentRepository),
		likes:     new(MockLikeRepository),
		videos:    new(MockVideoRepository),
		cleanup:   new(MockCleanupScheduler),
		publisher: new(MockPublisher),
	}
	uc := NewCommentUseCase(m.comments, m.likes, m.videos, m.cleanup, m.publisher, prefixResolver{}, 50)
	return uc, m
}

func (m *commentMocks) assert(t *testing.T) {
	m.comments.AssertExpectations(t)
	m.likes.AssertExpectations(t)
	m.videos.AssertExpectations(t)
	m.cleanup.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

// prefixResolver 模擬 presign
type prefixResolver struct{}

func (prefixResolver) ResolveURL(_ context.Context, stored string) string {
	if stored == "" {
		return ""
	}
	return "https://cdn.test/" + stored
}

func eventOfType(t notify.EventType) interface{} {
	return mock.MatchedBy(func(e notify.Event) bool { return e.Type == t })
}

func TestCommentUseCase_ListComments(t *testing.T) {
	ctx := context.Background()
	videoID := primitive.NewObjectID()
	viewer := primitive.NewObjectID()

	t.Run("success with viewer and clamp", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		items := []domain.CommentView{
			{ID: primitive.NewObjectID(), Content: "a", LikesCount: 2, IsLiked: true, Owner: &domain.CommentOwner{Username: "ann", Avatar: "avatars/a.png"}},
			{ID: primitive.NewObjectID(), Content: "b"},
		}
		m.videos.On("FindByID", ctx, videoID).Return(&catalog.Video{ID: videoID}, nil)
		m.comments.On("ListByVideo", ctx, videoID, &viewer, domain.PageQuery{Page: 1, Limit: 50}).Return(items, 2, nil)

		res, err := uc.ListComments(ctx, videoID.Hex(), 0, 500, viewer.Hex())
		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalDocs)
		assert.Equal(t, 50, res.Limit)
		assert.Equal(t, 1, res.TotalPages)
		assert.Equal(t, "https://cdn.test/avatars/a.png", res.Docs[0].Owner.Avatar)
		assert.Nil(t, res.Docs[1].Owner)
		m.assert(t)
	})

	t.Run("anonymous viewer", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.videos.On("FindByID", ctx, videoID).Return(&catalog.Video{ID: videoID}, nil)
		m.comments.On("ListByVideo", ctx, videoID, (*primitive.ObjectID)(nil), domain.PageQuery{Page: 2, Limit: 10}).
			Return([]domain.CommentView{}, 11, nil)

		res, err := uc.ListComments(ctx, videoID.Hex(), 2, 10, "")
		require.NoError(t, err)
		assert.True(t, res.HasPrevPage)
		assert.False(t, res.HasNextPage)
		m.assert(t)
	})

	t.Run("malformed video id", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		_, err := uc.ListComments(ctx, "nope", 1, 10, "")
		assert.True(t, errprocess.Is(err, errprocess.KindValidation))
		m.assert(t)
	})

	t.Run("video not found", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.videos.On("FindByID", ctx, videoID).Return(nil, nil)
		_, err := uc.ListComments(ctx, videoID.Hex(), 1, 10, "")
		assert.True(t, errprocess.Is(err, errprocess.KindNotFound))
		m.assert(t)
	})

	t.Run("store failure", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.videos.On("FindByID", ctx, videoID).Return(&catalog.Video{ID: videoID}, nil)
		m.comments.On("ListByVideo", ctx, videoID, mock.Anything, mock.Anything).Return(nil, 0, errors.New("timeout"))
		_, err := uc.ListComments(ctx, videoID.Hex(), 1, 10, "")
		assert.True(t, errprocess.Is(err, errprocess.KindInternal))
		m.assert(t)
	})
}

func TestCommentUseCase_AddComment(t *testing.T) {
	ctx := context.Background()
	videoID := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	commentID := primitive.NewObjectID()

	t.Run("success", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.videos.On("FindByID", ctx, videoID).Return(&catalog.Video{ID: videoID}, nil)
		m.comments.On("Insert", ctx, mock.MatchedBy(func(c *domain.Comment) bool {
			return c.Content == "great" && c.Owner == owner && c.Video == videoID && !c.CreatedAt.IsZero()
		})).Return(commentID, nil)
		stored := &domain.Comment{ID: commentID, Content: "great", Owner: owner, Video: videoID}
		m.comments.On("FindByID", ctx, commentID).Return(stored, nil)
		m.publisher.On("Publish", ctx, mock.MatchedBy(func(e notify.Event) bool {
			return e.Type == notify.CommentCreated && e.VideoID == videoID.Hex() && e.EntityID == commentID.Hex()
		})).Return(nil)

		got, err := uc.AddComment(ctx, videoID.Hex(), "  great ", owner.Hex())
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		m.assert(t)
	})

	t.Run("empty content touches nothing", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		_, err := uc.AddComment(ctx, videoID.Hex(), "   ", owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindValidation))
		m.assert(t)
	})

	t.Run("video missing", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.videos.On("FindByID", ctx, videoID).Return(nil, nil)
		_, err := uc.AddComment(ctx, videoID.Hex(), "hi", owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindNotFound))
		m.assert(t)
	})

	t.Run("not readable after insert", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.videos.On("FindByID", ctx, videoID).Return(&catalog.Video{ID: videoID}, nil)
		m.comments.On("Insert", ctx, mock.Anything).Return(commentID, nil)
		m.comments.On("FindByID", ctx, commentID).Return(nil, nil)
		_, err := uc.AddComment(ctx, videoID.Hex(), "hi", owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindInternal))
		assert.Equal(t, http.StatusInternalServerError, errprocess.StatusCode(err))
		assert.Equal(t, "failed to add comment", errprocess.Message(err))
		assert.Nil(t, errors.Unwrap(err))
		m.assert(t)
	})

	t.Run("publish failure does not fail request", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.videos.On("FindByID", ctx, videoID).Return(&catalog.Video{ID: videoID}, nil)
		m.comments.On("Insert", ctx, mock.Anything).Return(commentID, nil)
		m.comments.On("FindByID", ctx, commentID).Return(&domain.Comment{ID: commentID, Video: videoID}, nil)
		m.publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down"))
		_, err := uc.AddComment(ctx, videoID.Hex(), "hi", owner.Hex())
		assert.NoError(t, err)
		m.assert(t)
	})
}

func TestCommentUseCase_UpdateComment(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	existing := &domain.Comment{ID: commentID, Content: "old", Owner: owner, Video: primitive.NewObjectID()}

	t.Run("success", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(existing, nil)
		updated := *existing
		updated.Content = "new"
		m.comments.On("UpdateContent", ctx, commentID, "new", timeNow()).Return(&updated, nil)
		m.publisher.On("Publish", ctx, eventOfType(notify.CommentUpdated)).Return(nil)

		got, err := uc.UpdateComment(ctx, commentID.Hex(), "new", owner.Hex())
		require.NoError(t, err)
		assert.Equal(t, "new", got.Content)
		assert.Equal(t, owner, got.Owner)
		m.assert(t)
	})

	t.Run("empty content", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		_, err := uc.UpdateComment(ctx, commentID.Hex(), "", owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindValidation))
		m.assert(t)
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(nil, nil)
		_, err := uc.UpdateComment(ctx, commentID.Hex(), "new", owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindNotFound))
		m.assert(t)
	})

	t.Run("not owner", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(existing, nil)
		_, err := uc.UpdateComment(ctx, commentID.Hex(), "new", primitive.NewObjectID().Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindPermissionDenied))
		m.assert(t)
	})

	t.Run("update did not apply", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(existing, nil)
		m.comments.On("UpdateContent", ctx, commentID, "new", mock.Anything).Return(nil, nil)
		_, err := uc.UpdateComment(ctx, commentID.Hex(), "new", owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindInternal))
		assert.Equal(t, http.StatusInternalServerError, errprocess.StatusCode(err))
		assert.Equal(t, "failed to edit comment", errprocess.Message(err))
		m.assert(t)
	})
}

func TestCommentUseCase_DeleteComment(t *testing.T) {
	ctx := context.Background()
	owner := primitive.NewObjectID()
	commentID := primitive.NewObjectID()
	existing := &domain.Comment{ID: commentID, Content: "bye", Owner: owner, Video: primitive.NewObjectID()}

	t.Run("success cascades likes", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(existing, nil)
		m.comments.On("Delete", ctx, commentID).Return(int64(1), nil)
		m.likes.On("DeleteByComment", ctx, commentID).Return(int64(3), nil)
		m.publisher.On("Publish", ctx, eventOfType(notify.CommentDeleted)).Return(nil)

		res, err := uc.DeleteComment(ctx, commentID.Hex(), owner.Hex())
		require.NoError(t, err)
		assert.Equal(t, commentID, res.CommentID)
		m.cleanup.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
		m.assert(t)
	})

	t.Run("cascade failure schedules cleanup", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(existing, nil)
		m.comments.On("Delete", ctx, commentID).Return(int64(1), nil)
		m.likes.On("DeleteByComment", ctx, commentID).Return(int64(0), errors.New("write conflict"))
		m.cleanup.On("Schedule", ctx, commentID.Hex()).Return(nil)
		m.publisher.On("Publish", ctx, eventOfType(notify.CommentDeleted)).Return(nil)

		res, err := uc.DeleteComment(ctx, commentID.Hex(), owner.Hex())
		require.NoError(t, err)
		assert.Equal(t, commentID, res.CommentID)
		m.assert(t)
	})

	t.Run("cascade and schedule both fail", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(existing, nil)
		m.comments.On("Delete", ctx, commentID).Return(int64(1), nil)
		m.likes.On("DeleteByComment", ctx, commentID).Return(int64(0), errors.New("write conflict"))
		m.cleanup.On("Schedule", ctx, commentID.Hex()).Return(errors.New("channel closed"))
		m.publisher.On("Publish", ctx, mock.Anything).Return(nil)

		_, err := uc.DeleteComment(ctx, commentID.Hex(), owner.Hex())
		assert.NoError(t, err)
		m.assert(t)
	})

	t.Run("not owner", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(existing, nil)
		_, err := uc.DeleteComment(ctx, commentID.Hex(), primitive.NewObjectID().Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindPermissionDenied))
		m.assert(t)
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(nil, nil)
		_, err := uc.DeleteComment(ctx, commentID.Hex(), owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindNotFound))
		m.assert(t)
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		m.comments.On("FindByID", ctx, commentID).Return(existing, nil)
		m.comments.On("Delete", ctx, commentID).Return(int64(0), nil)
		_, err := uc.DeleteComment(ctx, commentID.Hex(), owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindNotFound))
		m.assert(t)
	})

	t.Run("malformed id", func(t *testing.T) {
		uc, m := newCommentUseCase(t)
		_, err := uc.DeleteComment(ctx, "zzz", owner.Hex())
		assert.True(t, errprocess.Is(err, errprocess.KindValidation))
		m.assert(t)
	})
}
