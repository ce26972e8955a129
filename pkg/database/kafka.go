package database

import (
	"context"
	"fmt"
	"time"

	"engagement_service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewKafkaWriterWithRetry 嘗試連線 broker 確認可用後建立 Kafka Writer
func NewKafkaWriterWithRetry(k KafkaConnection) (*kafka.Writer, error) {
	var err error

	if len(k.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers not configured")
	}

	for attempt := 1; attempt <= k.RetryCount; attempt++ {
		err = pingKafka(k.Brokers)
		if err == nil {
			logger.Log.Info("Kafka Writer 建立成功", zap.Int("attempt", attempt), zap.String("topic", k.Topic))
			return &kafka.Writer{
				Addr:                   kafka.TCP(k.Brokers...),
				Topic:                  k.Topic,
				Balancer:               &kafka.Hash{},
				AllowAutoTopicCreation: true,
				BatchTimeout:           50 * time.Millisecond,
			}, nil
		}

		logger.Log.Warn("Kafka 連線失敗",
			zap.Int("attempt", attempt),
			zap.Int("retry_count", k.RetryCount),
			zap.Error(err),
		)
		time.Sleep(k.RetryInterval * time.Second)
	}

	return nil, fmt.Errorf("無法建立 Kafka Writer，經過 %d 次嘗試: %v", k.RetryCount, err)
}

// pingKafka 只撥號不寫入，避免在 topic 留下測試訊息
func pingKafka(brokers []string) error {
	var err error
	for _, b := range brokers {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		var conn *kafka.Conn
		conn, err = kafka.DialContext(ctx, "tcp", b)
		cancel()
		if err == nil {
			return conn.Close()
		}
	}
	return err
}
