package app

import (
	"context"
	"encoding/json"
	"time"

	"engagement_service/internal/comment/domain"
	"engagement_service/internal/comment/repository"
	"engagement_service/pkg"
	"engagement_service/pkg/database"
	"engagement_service/pkg/logger"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// CleanupScheduler 排程補做按讚清除
type CleanupScheduler interface {
	Schedule(ctx context.Context, commentID string) error
}

// NopCleanupScheduler 沒有 RabbitMQ 時使用, 由定期 sweep 收尾
type NopCleanupScheduler struct{}

// Schedule only log the skipped job
func (NopCleanupScheduler) Schedule(_ context.Context, commentID string) error {
	logger.Log.Warn("like cleanup not scheduled, left to the orphan sweep", zap.String("comment_id", commentID))
	return nil
}

// RabbitCleanupScheduler 發布 LikeCleanupJob 到 like_cleanup queue
type RabbitCleanupScheduler struct {
	rabbit database.RabbitRepo
}

// NewRabbitCleanupScheduler create RabbitCleanupScheduler
func NewRabbitCleanupScheduler(rabbit database.RabbitRepo) *RabbitCleanupScheduler {
	return &RabbitCleanupScheduler{rabbit: rabbit}
}

// Schedule publish a persistent job message
func (s *RabbitCleanupScheduler) Schedule(_ context.Context, commentID string) error {
	body, err := json.Marshal(domain.LikeCleanupJob{
		JobID:       uuid.New().String(),
		CommentID:   commentID,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "marshal cleanup job")
	}

	err = s.rabbit.Publish(
		"",                      // default exchange
		domain.LikeCleanupQueue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	return pkgerrors.Wrap(err, "publish cleanup job")
}

// DeclareCleanupQueue 宣告 durable queue, producer 與 consumer 都會呼叫
func DeclareCleanupQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		domain.LikeCleanupQueue, // queue name
		true,                    // durable
		false,                   // autoDelete
		false,                   // exclusive
		false,                   // noWait
		nil,                     // arguments
	)
	return err
}

// CleanupJobHandler 處理一個 cleanup job
type CleanupJobHandler struct {
	likeRepo repository.LikeRepository
}

// NewCleanupJobHandler create CleanupJobHandler
func NewCleanupJobHandler(likeRepo repository.LikeRepository) *CleanupJobHandler {
	return &CleanupJobHandler{likeRepo: likeRepo}
}

// Handle 刪除該留言的按讚; 回傳 requeue 表示是否值得重試
func (h *CleanupJobHandler) Handle(ctx context.Context, body []byte) (requeue bool, err error) {
	var job domain.LikeCleanupJob
	if err := json.Unmarshal(body, &job); err != nil {
		// 格式錯誤的訊息重試也不會成功
		return false, pkgerrors.Wrap(err, "decode cleanup job")
	}
	cid, err := pkg.ParseObjectID("comment_id", job.CommentID)
	if err != nil {
		return false, err
	}

	n, err := h.likeRepo.DeleteByComment(ctx, cid)
	if err != nil {
		return true, err
	}
	logger.Log.Info("like cleanup done",
		zap.String("job_id", job.JobID),
		zap.String("comment_id", job.CommentID),
		zap.Int64("deleted", n),
	)
	return false, nil
}

// Sweep 刪除孤兒按讚
func (h *CleanupJobHandler) Sweep(ctx context.Context) (int64, error) {
	n, err := h.likeRepo.SweepOrphanLikes(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Log.Info("orphan likes swept", zap.Int64("deleted", n))
	}
	return n, nil
}
