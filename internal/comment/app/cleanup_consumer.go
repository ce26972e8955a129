package app

import (
	"context"
	"time"

	"engagement_service/internal/comment/domain"
	"engagement_service/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// requeueDelay 失敗後稍等再 nack, 避免立刻重投打爆 DB
var requeueDelay = 10 * time.Second

// Consumer 定義一個消息消費者，將所有必要的依賴注入進來
type Consumer struct {
	rabbitChannel *amqp.Channel
	handler       *CleanupJobHandler
	queueName     string
}

// NewConsumer 建構 Consumer 實例
func NewConsumer(rabbitChannel *amqp.Channel, handler *CleanupJobHandler) *Consumer {
	return &Consumer{
		rabbitChannel: rabbitChannel,
		handler:       handler,
		queueName:     domain.LikeCleanupQueue,
	}
}

// StartConsumer 開始消費訊息，直到 ctx 結束或 channel 關閉
func (c *Consumer) StartConsumer(ctx context.Context) error {
	// 一次只拿一筆, 處理完才拿下一筆
	if err := c.rabbitChannel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.rabbitChannel.Consume(
		c.queueName, // queue
		"",          // consumer tag，留空由系統分配
		false,       // autoAck 為 false，使用手動確認
		false,       // exclusive
		false,       // noLocal
		false,       // noWait
		nil,         // arguments
	)
	if err != nil {
		return err
	}

	logger.Log.Info("Consumer 已啟動，等待 like cleanup 工作...", zap.String("queue", c.queueName))
	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				logger.Log.Warn("RabbitMQ 消費 channel 已關閉")
				return nil
			}
			c.process(ctx, d)
		case <-ctx.Done():
			logger.Log.Info("Consumer 收到停止訊號")
			return nil
		}
	}
}

func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	requeue, err := c.handler.Handle(ctx, d.Body)
	if err == nil {
		if err := d.Ack(false); err != nil {
			logger.Log.Error("確認訊息失敗", zap.Error(err))
		}
		return
	}

	logger.Log.Error("處理 like cleanup 失敗", zap.Bool("requeue", requeue), zap.Error(err))
	if requeue {
		select {
		case <-time.After(requeueDelay):
		case <-ctx.Done():
		}
	}
	if err := d.Nack(false, requeue); err != nil {
		logger.Log.Error("Nack 訊息失敗", zap.Error(err))
	}
}

// RunSweeper 啟動時先 sweep 一次，之後每 interval 一次；interval <= 0 只跑一次
func RunSweeper(ctx context.Context, h *CleanupJobHandler, interval time.Duration) {
	if _, err := h.Sweep(ctx); err != nil {
		logger.Log.Error("orphan like sweep failed", zap.Error(err))
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := h.Sweep(ctx); err != nil {
				logger.Log.Error("orphan like sweep failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}
