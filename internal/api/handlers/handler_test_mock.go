package handlers

import (
	"context"

	commentdomain "engagement_service/internal/comment/domain"
	"engagement_service/internal/notify"
	playlistdomain "engagement_service/internal/playlist/domain"

	"github.com/stretchr/testify/mock"
)

// MockCommentUseCase Mock CommentUseCase
type MockCommentUseCase struct {
	mock.Mock
}

// ListComments moke list comments
func (m *MockCommentUseCase) ListComments(ctx context.Context, videoID string, page, limit int, viewerID string) (*commentdomain.PagedResult[commentdomain.CommentView], error) {
	args := m.Called(ctx, videoID, page, limit, viewerID)
	if args.Get(0) != nil {
		return args.Get(0).(*commentdomain.PagedResult[commentdomain.CommentView]), args.Error(1)
	}
	return nil, args.Error(1)
}

// AddComment moke add comment
func (m *MockCommentUseCase) AddComment(ctx context.Context, videoID, content, ownerID string) (*commentdomain.Comment, error) {
	args := m.Called(ctx, videoID, content, ownerID)
	if args.Get(0) != nil {
		return args.Get(0).(*commentdomain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateComment moke update comment
func (m *MockCommentUseCase) UpdateComment(ctx context.Context, commentID, content, actingUserID string) (*commentdomain.Comment, error) {
	args := m.Called(ctx, commentID, content, actingUserID)
	if args.Get(0) != nil {
		return args.Get(0).(*commentdomain.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

// DeleteComment moke delete comment
func (m *MockCommentUseCase) DeleteComment(ctx context.Context, commentID, actingUserID string) (*commentdomain.DeleteCommentRes, error) {
	args := m.Called(ctx, commentID, actingUserID)
	if args.Get(0) != nil {
		return args.Get(0).(*commentdomain.DeleteCommentRes), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPlaylistUseCase Mock PlaylistUseCase
type MockPlaylistUseCase struct {
	mock.Mock
}

func (m *MockPlaylistUseCase) playlist(args mock.Arguments) (*playlistdomain.Playlist, error) {
	if args.Get(0) != nil {
		return args.Get(0).(*playlistdomain.Playlist), args.Error(1)
	}
	return nil, args.Error(1)
}

// CreatePlaylist moke create playlist
func (m *MockPlaylistUseCase) CreatePlaylist(ctx context.Context, name, description, ownerID string) (*playlistdomain.Playlist, error) {
	return m.playlist(m.Called(ctx, name, description, ownerID))
}

// ListUserPlaylists moke list playlists
func (m *MockPlaylistUseCase) ListUserPlaylists(ctx context.Context, userID string) ([]playlistdomain.PlaylistSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]playlistdomain.PlaylistSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetPlaylist moke playlist detail
func (m *MockPlaylistUseCase) GetPlaylist(ctx context.Context, playlistID string) (*playlistdomain.PlaylistDetail, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) != nil {
		return args.Get(0).(*playlistdomain.PlaylistDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

// AddVideo moke add video
func (m *MockPlaylistUseCase) AddVideo(ctx context.Context, playlistID, videoID, actingUserID string) (*playlistdomain.Playlist, error) {
	return m.playlist(m.Called(ctx, playlistID, videoID, actingUserID))
}

// RemoveVideo moke remove video
func (m *MockPlaylistUseCase) RemoveVideo(ctx context.Context, playlistID, videoID, actingUserID string) (*playlistdomain.Playlist, error) {
	return m.playlist(m.Called(ctx, playlistID, videoID, actingUserID))
}

// DeletePlaylist moke delete playlist
func (m *MockPlaylistUseCase) DeletePlaylist(ctx context.Context, playlistID, actingUserID string) error {
	args := m.Called(ctx, playlistID, actingUserID)
	return args.Error(0)
}

// UpdatePlaylist moke update playlist
func (m *MockPlaylistUseCase) UpdatePlaylist(ctx context.Context, playlistID, name, description, actingUserID string) (*playlistdomain.Playlist, error) {
	return m.playlist(m.Called(ctx, playlistID, name, description, actingUserID))
}

// MockFeedSubscriber Mock FeedSubscriber
type MockFeedSubscriber struct {
	mock.Mock
}

// Subscribe moke subscribe
func (m *MockFeedSubscriber) Subscribe(ctx context.Context, videoID string, handler func(e notify.Event)) error {
	args := m.Called(ctx, videoID, handler)
	return args.Error(0)
}
