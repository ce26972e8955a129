package app

import (
	"context"
	"strings"
	"time"

	catalog "engagement_service/internal/catalog/domain"
	catalogrepo "engagement_service/internal/catalog/repository"
	"engagement_service/internal/notify"
	"engagement_service/internal/playlist/domain"
	"engagement_service/internal/playlist/repository"
	"engagement_service/internal/policy"
	"engagement_service/pkg"
	errprocess "engagement_service/pkg/err"
	"engagement_service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PlaylistUseCase 播放清單的查詢與異動
type PlaylistUseCase interface {
	CreatePlaylist(ctx context.Context, name, description, ownerID string) (*domain.Playlist, error)
	ListUserPlaylists(ctx context.Context, userID string) ([]domain.PlaylistSummary, error)
	// GetPlaylist 有影片但全部未發布時回傳 nil, nil
	GetPlaylist(ctx context.Context, playlistID string) (*domain.PlaylistDetail, error)
	AddVideo(ctx context.Context, playlistID, videoID, actingUserID string) (*domain.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID, actingUserID string) (*domain.Playlist, error)
	DeletePlaylist(ctx context.Context, playlistID, actingUserID string) error
	UpdatePlaylist(ctx context.Context, playlistID, name, description, actingUserID string) (*domain.Playlist, error)
}

type playlistUseCase struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    catalogrepo.VideoRepository
	publisher    notify.Publisher
	resolver     catalog.URLResolver
}

var timeNow = func() time.Time {
	return time.Now().UTC()
}

// NewPlaylistUseCase 建立 PlaylistUseCase
func NewPlaylistUseCase(
	playlistRepo repository.PlaylistRepository,
	videoRepo catalogrepo.VideoRepository,
	publisher notify.Publisher,
	resolver catalog.URLResolver,
) PlaylistUseCase {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if resolver == nil {
		resolver = catalog.NopResolver{}
	}
	return &playlistUseCase{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		publisher:    publisher,
		resolver:     resolver,
	}
}

func validateNameDescription(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return "", "", errprocess.Validation("name and description are required")
	}
	return name, description, nil
}

func (uc *playlistUseCase) CreatePlaylist(ctx context.Context, name, description, ownerID string) (*domain.Playlist, error) {
	name, description, err := validateNameDescription(name, description)
	if err != nil {
		return nil, err
	}
	owner, err := pkg.ParseObjectID("user id", ownerID)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	p := &domain.Playlist{
		Name:        name,
		Description: description,
		Owner:       owner,
		Videos:      []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := uc.playlistRepo.Create(ctx, p)
	if err != nil {
		return nil, errprocess.Internal("failed to create playlist", err)
	}
	p.ID = id

	uc.publish(ctx, notify.NewEvent(notify.PlaylistCreated, id.Hex(), ownerID, "", p))
	return p, nil
}

func (uc *playlistUseCase) ListUserPlaylists(ctx context.Context, userID string) ([]domain.PlaylistSummary, error) {
	owner, err := pkg.ParseObjectID("userId", userID)
	if err != nil {
		return nil, err
	}
	list, err := uc.playlistRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, errprocess.Internal("failed to list playlists", err)
	}
	if list == nil {
		list = []domain.PlaylistSummary{}
	}
	return list, nil
}

func (uc *playlistUseCase) GetPlaylist(ctx context.Context, playlistID string) (*domain.PlaylistDetail, error) {
	id, err := pkg.ParseObjectID("playlistId", playlistID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.findPlaylist(ctx, id); err != nil {
		return nil, err
	}

	detail, err := uc.playlistRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, errprocess.Internal("failed to load playlist", err)
	}
	if detail == nil {
		return nil, nil
	}

	for i := range detail.Videos {
		detail.Videos[i].VideoFile = uc.resolver.ResolveURL(ctx, detail.Videos[i].VideoFile)
		detail.Videos[i].Thumbnail = uc.resolver.ResolveURL(ctx, detail.Videos[i].Thumbnail)
	}
	if detail.Owner != nil {
		detail.Owner.Avatar = uc.resolver.ResolveURL(ctx, detail.Owner.Avatar)
	}
	return detail, nil
}

func (uc *playlistUseCase) AddVideo(ctx context.Context, playlistID, videoID, actingUserID string) (*domain.Playlist, error) {
	p, vid, err := uc.membershipTarget(ctx, playlistID, videoID, actingUserID)
	if err != nil {
		return nil, err
	}
	// 已在清單內不寫入
	if pkg.Contains(p.Videos, vid) {
		return p, nil
	}

	updated, err := uc.playlistRepo.AddVideo(ctx, p.ID, vid, timeNow())
	if err != nil {
		return nil, errprocess.Internal("failed to add video to playlist", err)
	}
	if updated == nil {
		return nil, errprocess.NotFound("playlist not found")
	}

	uc.publish(ctx, notify.NewEvent(notify.PlaylistVideoAdded, p.ID.Hex(), actingUserID, videoID, nil))
	return updated, nil
}

func (uc *playlistUseCase) RemoveVideo(ctx context.Context, playlistID, videoID, actingUserID string) (*domain.Playlist, error) {
	p, vid, err := uc.membershipTarget(ctx, playlistID, videoID, actingUserID)
	if err != nil {
		return nil, err
	}
	if !pkg.Contains(p.Videos, vid) {
		return p, nil
	}

	updated, err := uc.playlistRepo.RemoveVideo(ctx, p.ID, vid, timeNow())
	if err != nil {
		return nil, errprocess.Internal("failed to remove video from playlist", err)
	}
	if updated == nil {
		return nil, errprocess.NotFound("playlist not found")
	}

	uc.publish(ctx, notify.NewEvent(notify.PlaylistVideoRemoved, p.ID.Hex(), actingUserID, videoID, nil))
	return updated, nil
}

func (uc *playlistUseCase) DeletePlaylist(ctx context.Context, playlistID, actingUserID string) error {
	p, err := uc.ownedPlaylist(ctx, playlistID, actingUserID, "only the owner can delete this playlist")
	if err != nil {
		return err
	}

	n, err := uc.playlistRepo.Delete(ctx, p.ID)
	if err != nil {
		return errprocess.Internal("failed to delete playlist", err)
	}
	if n == 0 {
		return errprocess.NotFound("playlist not found")
	}

	uc.publish(ctx, notify.NewEvent(notify.PlaylistDeleted, p.ID.Hex(), actingUserID, "", nil))
	return nil
}

func (uc *playlistUseCase) UpdatePlaylist(ctx context.Context, playlistID, name, description, actingUserID string) (*domain.Playlist, error) {
	name, description, err := validateNameDescription(name, description)
	if err != nil {
		return nil, err
	}
	p, err := uc.ownedPlaylist(ctx, playlistID, actingUserID, "only the owner can update this playlist")
	if err != nil {
		return nil, err
	}

	updated, err := uc.playlistRepo.Update(ctx, p.ID, name, description, timeNow())
	if err != nil {
		return nil, errprocess.Internal("failed to update playlist", err)
	}
	if updated == nil {
		return nil, errprocess.Set("failed to update playlist")
	}

	uc.publish(ctx, notify.NewEvent(notify.PlaylistUpdated, p.ID.Hex(), actingUserID, "", updated))
	return updated, nil
}

// membershipTarget 檢查清單與影片存在, 且 acting user 擁有其中之一
func (uc *playlistUseCase) membershipTarget(ctx context.Context, playlistID, videoID, actingUserID string) (*domain.Playlist, primitive.ObjectID, error) {
	pid, err := pkg.ParseObjectID("playlistId", playlistID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	vid, err := pkg.ParseObjectID("videoId", videoID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	acting, err := pkg.ParseObjectID("user id", actingUserID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}

	p, err := uc.findPlaylist(ctx, pid)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	video, err := uc.videoRepo.FindByID(ctx, vid)
	if err != nil {
		return nil, primitive.NilObjectID, errprocess.Internal("failed to load video", err)
	}
	if video == nil {
		return nil, primitive.NilObjectID, errprocess.NotFound("video not found")
	}

	if !policy.CanManageMembership(p.Owner, video.Owner, acting) {
		return nil, primitive.NilObjectID, errprocess.PermissionDenied("only the playlist owner or the video owner can change membership")
	}
	return p, vid, nil
}

func (uc *playlistUseCase) ownedPlaylist(ctx context.Context, playlistID, actingUserID, deniedMsg string) (*domain.Playlist, error) {
	pid, err := pkg.ParseObjectID("playlistId", playlistID)
	if err != nil {
		return nil, err
	}
	acting, err := pkg.ParseObjectID("user id", actingUserID)
	if err != nil {
		return nil, err
	}

	p, err := uc.findPlaylist(ctx, pid)
	if err != nil {
		return nil, err
	}
	if !policy.IsOwner(p.Owner, acting) {
		return nil, errprocess.PermissionDenied(deniedMsg)
	}
	return p, nil
}

func (uc *playlistUseCase) findPlaylist(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	p, err := uc.playlistRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errprocess.Internal("failed to load playlist", err)
	}
	if p == nil {
		return nil, errprocess.NotFound("playlist not found")
	}
	return p, nil
}

func (uc *playlistUseCase) publish(ctx context.Context, e notify.Event) {
	if err := uc.publisher.Publish(ctx, e); err != nil {
		logger.Log.Warn("publish event failed", zap.String("type", string(e.Type)), zap.Error(err))
	}
}
