package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"engagement_service/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoURI build mongodb connect string
func MongoURI(host string, port int, user, password string) string {
	if user == "" {
		return fmt.Sprintf("mongodb://%s:%d", host, port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", user, password, host, port)
}

// pingTimeout 每次嘗試 ping 的上限
var pingTimeout = 5 * time.Second

// NewMongoDB 連線並 ping primary, 失敗時依 RetryInterval 重試
func NewMongoDB(ctx context.Context, c Connection, dbName string) (*MongoDB, error) {
	clientOpts := options.Client().ApplyURI(c.ConnectStr)

	var err error
	for i := 0; i <= c.RetryCount; i++ {
		var client *mongo.Client
		if client, err = mongo.Connect(ctx, clientOpts); err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			err = client.Ping(pingCtx, readpref.Primary())
			cancel()
			if err == nil {
				logger.Log.Info("MongoDB 連線成功", zap.String("database", dbName), zap.Int("attempt", i+1))
				return &MongoDB{
					Client:   client,
					Database: client.Database(dbName),
				}, nil
			}
			// ping 失敗的 client 要關掉
			_ = client.Disconnect(ctx)
		}

		logger.Log.Warn("Failed to connect to MongoDB, retrying...",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)
		if i < c.RetryCount {
			time.Sleep(c.RetryInterval)
		}
	}

	return nil, errors.New("failed to connect to MongoDB after retries: " + err.Error())
}

// Close disenable mongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
