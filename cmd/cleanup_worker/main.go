package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"engagement_service/internal/comment/app"
	"engagement_service/internal/comment/repository"
	"engagement_service/pkg/config"
	"engagement_service/pkg/database"
	"engagement_service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.CleanupWorker, config.EnvConfig.CleanupWorkerLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.CleanupWorker](config.EnvConfig.CleanupWorker, config.EnvConfig.CleanupWorkerYAMLPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. 連線 MongoDB
	mongoDB, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    database.MongoURI(cfg.MongoDB.Host, cfg.MongoDB.Port, cfg.MongoDB.User, cfg.MongoDB.Password),
		RetryCount:    cfg.MongoDB.RetryCount,
		RetryInterval: time.Duration(cfg.MongoDB.RetryInterval) * time.Second,
	}, cfg.MongoDB.Database)
	if err != nil {
		logger.Log.Fatal("Unable to connect to MongoDB after retries",
			zap.String("host", cfg.MongoDB.Host),
			zap.Error(err),
		)
	}
	defer mongoDB.Close(context.Background())

	handler := app.NewCleanupJobHandler(repository.NewLikeRepository(mongoDB.Database))

	// 2. 連線 RabbitMQ
	conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
		ConnectStr:    database.RabbitURI(cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port),
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: cfg.RabbitMQ.RetryInterval,
	})
	if err != nil {
		log.Fatalf("RabbitMQ 連線失敗: %v", err)
	}
	defer conn.Close()

	rabbitChannel, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RabbitMQ.RetryCount, cfg.RabbitMQ.RetryInterval)
	if err != nil {
		log.Fatalf("取得 RabbitMQ Channel 失敗: %v", err)
	}
	defer rabbitChannel.Close()

	//先初始化一個queue name = like_cleanup
	if err := app.DeclareCleanupQueue(rabbitChannel); err != nil {
		log.Fatalf("Queue Declare failed: %v", err)
	}

	consumer := app.NewConsumer(rabbitChannel, handler)
	go func() {
		if err := consumer.StartConsumer(ctx); err != nil {
			logger.Log.Error("consumer stopped", zap.Error(err))
			cancel()
		}
	}()

	// 啟動時 sweep 一次, 之後依設定週期執行
	go app.RunSweeper(ctx, handler, cfg.SweepInterval*time.Minute)

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Log.Info("Shutting down cleanup worker...")
	case <-ctx.Done():
	}
	cancel()
}
