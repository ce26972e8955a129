package notify

import (
	"context"
	"encoding/json"
	"strings"

	"engagement_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// CommentChannel redis channel of a video's comment feed
func CommentChannel(videoID string) string {
	return "comments:video:" + videoID
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{client: client}
}

// Publish 只推留言事件到該影片的 channel, 其他事件略過
func (r *RedisPubSub) Publish(ctx context.Context, e Event) error {
	if e.VideoID == "" || !strings.HasPrefix(string(e.Type), "comment.") {
		return nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal event")
	}
	return pkgerrors.Wrap(r.client.Publish(ctx, CommentChannel(e.VideoID), data).Err(), "redis publish")
}

// Subscribe 訂閱影片留言, 收到訊息後呼叫 handler, ctx 結束時關閉訂閱
func (r *RedisPubSub) Subscribe(ctx context.Context, videoID string, handler func(e Event)) error {
	channel := CommentChannel(videoID)
	sub := r.client.Subscribe(ctx, channel)
	// 確認訂閱成功再回傳
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return pkgerrors.Wrap(err, "redis subscribe")
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var e Event
				if err := json.Unmarshal([]byte(m.Payload), &e); err != nil {
					logger.Log.Warn("unmarshal feed event failed", zap.String("channel", channel), zap.Error(err))
					continue
				}
				handler(e)
			case <-ctx.Done():
				logger.Log.Debug("sub close", zap.String("channel", channel))
				return
			}
		}
	}()
	return nil
}
