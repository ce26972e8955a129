package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	_ "engagement_service/cmd/engagement_service/docs" // 引入 Swagger 文档
	"engagement_service/internal/api/handlers"
	"engagement_service/internal/api/router"
	catalog "engagement_service/internal/catalog/domain"
	catalogrepo "engagement_service/internal/catalog/repository"
	commentapp "engagement_service/internal/comment/app"
	commentrepo "engagement_service/internal/comment/repository"
	"engagement_service/internal/notify"
	playlistapp "engagement_service/internal/playlist/app"
	playlistrepo "engagement_service/internal/playlist/repository"
	"engagement_service/pkg/config"
	"engagement_service/pkg/database"
	"engagement_service/pkg/logger"
	testtool "engagement_service/pkg/test_tool"
	"engagement_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.EngagementService, config.EnvConfig.EngagementServiceLogPath)
	defer logger.Log.Sync()

	cfg := config.LoadConfig[config.Engagement](config.EnvConfig.EngagementService, config.EnvConfig.EngagementServiceYAMLPath)
	if config.EnvConfig.EngagementServicePort != "" {
		cfg.Port = config.EnvConfig.EngagementServicePort
	}
	token.SetSecret(cfg.JWTSecret)

	testtool.StartPprof()

	ctx := context.Background()

	// 1. 連線 MongoDB
	mongoURI := database.MongoURI(cfg.MongoDB.Host, cfg.MongoDB.Port, cfg.MongoDB.User, cfg.MongoDB.Password)
	mongoDB, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    mongoURI,
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

	commentRepo := commentrepo.NewCommentRepository(mongoDB.Database)
	likeRepo := commentrepo.NewLikeRepository(mongoDB.Database)
	playlistRepo := playlistrepo.NewPlaylistRepository(mongoDB.Database)
	videoRepo := catalogrepo.NewVideoRepository(mongoDB.Database)

	for name, ensure := range map[string]func(context.Context) error{
		"comments":  commentRepo.EnsureIndexes,
		"likes":     likeRepo.EnsureIndexes,
		"playlists": playlistRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Log.Warn("ensure indexes failed", zap.String("collection", name), zap.Error(err))
		}
	}

	// 2. 選用的 transport, 沒設定就用 nop
	publishers := notify.Multi{}
	var feedHandler *handlers.CommentFeedHandler

	if cfg.Redis.Enabled {
		masterName, sentinelAddrs := config.GetRedisSetting()
		redisClient, err := database.NewRedisClient(ctx, database.RedisConnection{
			MasterName:    masterName,
			SentinelAddrs: sentinelAddrs,
			Addr:          cfg.Redis.Addr,
			DB:            cfg.Redis.RedisDB,
		})
		if err != nil {
			logger.Log.Fatal("Redis 連線失敗", zap.Error(err))
		}
		defer redisClient.Close()

		pubsub := notify.NewRedisPubSub(redisClient)
		publishers = append(publishers, pubsub)
		feedHandler = handlers.NewCommentFeedHandler(pubsub)
	}

	if cfg.KafKa.Enabled {
		topic := cfg.KafKa.Topic
		if topic == "" {
			topic = notify.DefaultTopic
		}
		kafkaWriter, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.KafKa.Brokers,
			Topic:         topic,
			RetryCount:    cfg.KafKa.RetryCount,
			RetryInterval: cfg.KafKa.RetryInterval,
		})
		if err != nil {
			log.Fatalf("Kafka Writer 建立失敗: %v", err)
		}
		defer kafkaWriter.Close()

		publishers = append(publishers, notify.NewKafkaPublisher(kafkaWriter))
	}

	var scheduler commentapp.CleanupScheduler
	if cfg.RabbitMQ.Enabled {
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

		if err := commentapp.DeclareCleanupQueue(rabbitChannel); err != nil {
			log.Fatalf("Queue Declare failed: %v", err)
		}
		scheduler = commentapp.NewRabbitCleanupScheduler(database.NewRabbitRepository(rabbitChannel))
	}

	var resolver catalog.URLResolver
	if cfg.MinIO.Enabled {
		expiry := cfg.MinIO.PresignExpiry * time.Minute
		if expiry <= 0 {
			expiry = 15 * time.Minute
		}
		minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
			Endpoint:   fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
			User:       cfg.MinIO.User,
			Password:   cfg.MinIO.Password,
			BucketName: cfg.MinIO.BucketName,
			UseSSL:     cfg.MinIO.UseSSL,

			RetryCount:    cfg.MinIO.RetryCount,
			RetryInterval: cfg.MinIO.RetryInterval,
		}, expiry)
		if err != nil {
			logger.Log.Fatal("Unable to connect to minio after retries", zap.Error(err))
		}
		resolver = minioClient
	}

	var publisher notify.Publisher
	if len(publishers) > 0 {
		publisher = publishers
	}

	// 3. use case / handler
	commentUC := commentapp.NewCommentUseCase(commentRepo, likeRepo, videoRepo, scheduler, publisher, resolver, cfg.Pagination.MaxLimit)
	playlistUC := playlistapp.NewPlaylistUseCase(playlistRepo, videoRepo, publisher, resolver)

	// 创建 Fiber 应用
	r := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	// 添加日志中间件
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.EngagementServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))

	// 注册路由
	router.RegisterRoutes(r, router.Handlers{
		Comment:  handlers.NewCommentHandler(commentUC),
		Playlist: handlers.NewPlaylistHandler(playlistUC),
		Feed:     feedHandler,
	})

	// 启动服务器
	logger.Log.Info("engagement service listening", zap.String("port", cfg.Port))
	if err := r.Listen(cfg.IP + ":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
