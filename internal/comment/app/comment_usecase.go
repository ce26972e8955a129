package app

import (
	"context"
	"strings"
	"time"

	catalog "engagement_service/internal/catalog/domain"
	catalogrepo "engagement_service/internal/catalog/repository"
	"engagement_service/internal/comment/domain"
	"engagement_service/internal/comment/repository"
	"engagement_service/internal/notify"
	"engagement_service/internal/policy"
	"engagement_service/pkg"
	errprocess "engagement_service/pkg/err"
	"engagement_service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CommentUseCase 留言的查詢與異動
type CommentUseCase interface {
	ListComments(ctx context.Context, videoID string, page, limit int, viewerID string) (*domain.PagedResult[domain.CommentView], error)
	AddComment(ctx context.Context, videoID, content, ownerID string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, commentID, content, actingUserID string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID, actingUserID string) (*domain.DeleteCommentRes, error)
}

type commentUseCase struct {
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	videoRepo   catalogrepo.VideoRepository
	cleanup     CleanupScheduler
	publisher   notify.Publisher
	resolver    catalog.URLResolver
	maxLimit    int
}

// timeNow test 時可替換
var timeNow = func() time.Time {
	return time.Now().UTC()
}

// NewCommentUseCase 建立 CommentUseCase, nil 的 scheduler/publisher/resolver 以 nop 取代
func NewCommentUseCase(
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	videoRepo catalogrepo.VideoRepository,
	cleanup CleanupScheduler,
	publisher notify.Publisher,
	resolver catalog.URLResolver,
	maxLimit int,
) CommentUseCase {
	if cleanup == nil {
		cleanup = NopCleanupScheduler{}
	}
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if resolver == nil {
		resolver = catalog.NopResolver{}
	}
	return &commentUseCase{
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		cleanup:     cleanup,
		publisher:   publisher,
		resolver:    resolver,
		maxLimit:    maxLimit,
	}
}

func (uc *commentUseCase) ListComments(ctx context.Context, videoID string, page, limit int, viewerID string) (*domain.PagedResult[domain.CommentView], error) {
	vid, err := pkg.ParseObjectID("videoId", videoID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireVideo(ctx, vid); err != nil {
		return nil, err
	}

	// viewer 不合法時視為匿名
	var viewer *primitive.ObjectID
	if viewerID != "" {
		if oid, err := primitive.ObjectIDFromHex(viewerID); err == nil {
			viewer = &oid
		} else {
			logger.Log.Warn("ignore malformed viewer id", zap.String("viewer", viewerID))
		}
	}

	q := domain.NewPageQuery(page, limit, uc.maxLimit)
	items, total, err := uc.commentRepo.ListByVideo(ctx, vid, viewer, q)
	if err != nil {
		return nil, errprocess.Internal("list comments failed", err)
	}

	for i := range items {
		if items[i].Owner != nil {
			items[i].Owner.Avatar = uc.resolver.ResolveURL(ctx, items[i].Owner.Avatar)
		}
	}

	res := domain.NewPagedResult(items, total, q)
	return &res, nil
}

func (uc *commentUseCase) AddComment(ctx context.Context, videoID, content, ownerID string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errprocess.Validation("content is required")
	}
	vid, err := pkg.ParseObjectID("videoId", videoID)
	if err != nil {
		return nil, err
	}
	owner, err := pkg.ParseObjectID("user id", ownerID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireVideo(ctx, vid); err != nil {
		return nil, err
	}

	now := timeNow()
	id, err := uc.commentRepo.Insert(ctx, &domain.Comment{
		Content:   content,
		Owner:     owner,
		Video:     vid,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, errprocess.Internal("failed to add comment", err)
	}

	// 寫入後讀回確認
	created, err := uc.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errprocess.Internal("failed to add comment", err)
	}
	if created == nil {
		return nil, errprocess.Set("failed to add comment")
	}

	uc.publish(ctx, notify.NewEvent(notify.CommentCreated, created.ID.Hex(), ownerID, videoID, created))
	return created, nil
}

func (uc *commentUseCase) UpdateComment(ctx context.Context, commentID, content, actingUserID string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errprocess.Validation("content is required")
	}
	comment, acting, err := uc.ownedComment(ctx, commentID, actingUserID, "only the owner can edit this comment")
	if err != nil {
		return nil, err
	}

	updated, err := uc.commentRepo.UpdateContent(ctx, comment.ID, content, timeNow())
	if err != nil {
		return nil, errprocess.Internal("failed to edit comment", err)
	}
	if updated == nil {
		return nil, errprocess.Set("failed to edit comment")
	}

	uc.publish(ctx, notify.NewEvent(notify.CommentUpdated, updated.ID.Hex(), acting.Hex(), updated.Video.Hex(), updated))
	return updated, nil
}

func (uc *commentUseCase) DeleteComment(ctx context.Context, commentID, actingUserID string) (*domain.DeleteCommentRes, error) {
	comment, acting, err := uc.ownedComment(ctx, commentID, actingUserID, "only the owner can delete this comment")
	if err != nil {
		return nil, err
	}

	n, err := uc.commentRepo.Delete(ctx, comment.ID)
	if err != nil {
		return nil, errprocess.Internal("failed to delete comment", err)
	}
	if n == 0 {
		// 併發刪除
		return nil, errprocess.NotFound("comment not found")
	}

	// 按讚清除失敗不回滾留言刪除, 交給 cleanup worker 補做
	if _, err := uc.likeRepo.DeleteByComment(ctx, comment.ID); err != nil {
		logger.Log.Error("delete likes of comment failed",
			zap.String("comment_id", comment.ID.Hex()),
			zap.Error(err),
		)
		if err := uc.cleanup.Schedule(ctx, comment.ID.Hex()); err != nil {
			logger.Log.Error("schedule like cleanup failed",
				zap.String("comment_id", comment.ID.Hex()),
				zap.Error(err),
			)
		}
	}

	uc.publish(ctx, notify.NewEvent(notify.CommentDeleted, comment.ID.Hex(), acting.Hex(), comment.Video.Hex(), nil))
	return &domain.DeleteCommentRes{CommentID: comment.ID}, nil
}

// ownedComment 解析 id, 確認留言存在且 acting user 是作者
func (uc *commentUseCase) ownedComment(ctx context.Context, commentID, actingUserID, deniedMsg string) (*domain.Comment, primitive.ObjectID, error) {
	cid, err := pkg.ParseObjectID("commentId", commentID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	acting, err := pkg.ParseObjectID("user id", actingUserID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}

	comment, err := uc.commentRepo.FindByID(ctx, cid)
	if err != nil {
		return nil, primitive.NilObjectID, errprocess.Internal("failed to load comment", err)
	}
	if comment == nil {
		return nil, primitive.NilObjectID, errprocess.NotFound("comment not found")
	}
	if !policy.IsOwner(comment.Owner, acting) {
		return nil, primitive.NilObjectID, errprocess.PermissionDenied(deniedMsg)
	}
	return comment, acting, nil
}

func (uc *commentUseCase) requireVideo(ctx context.Context, id primitive.ObjectID) error {
	video, err := uc.videoRepo.FindByID(ctx, id)
	if err != nil {
		return errprocess.Internal("failed to load video", err)
	}
	if video == nil {
		return errprocess.NotFound("video not found")
	}
	return nil
}

func (uc *commentUseCase) publish(ctx context.Context, e notify.Event) {
	if err := uc.publisher.Publish(ctx, e); err != nil {
		logger.Log.Warn("publish event failed", zap.String("type", string(e.Type)), zap.Error(err))
	}
}
