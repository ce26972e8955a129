package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"engagement_service/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinIOClient definition minio client
type MinIOClient struct {
	Client     *minio.Client
	BucketName string
	Expiry     time.Duration
}

// NewMinIOConnection create a new minio connection have retry
func NewMinIOConnection(d MinIOConnection, expiry time.Duration) (*MinIOClient, error) {
	if d.RetryCount < 1 {
		return nil, fmt.Errorf("minIO retry_count must be at least 1, got %d", d.RetryCount)
	}

	var mc *MinIOClient
	var err error

	for i := 1; i <= d.RetryCount; i++ {
		mc, err = NewMinioClient(d.Endpoint, d.User, d.Password, d.BucketName, d.UseSSL)
		if err == nil {
			mc.Expiry = expiry
			logger.Log.Info("minIO 連線成功", zap.String("endpoint", d.Endpoint), zap.Int("attempt", i))
			return mc, nil
		}

		logger.Log.Warn("minIO 連線失敗",
			zap.String("endpoint", d.Endpoint),
			zap.Int("attempt", i),
			zap.Error(err),
		)
		time.Sleep(d.RetryInterval * time.Second)
	}

	return nil, fmt.Errorf("無法連線 minIO，經過 %d 次嘗試: %w", d.RetryCount, err)
}

// NewMinioClient create a new minio, bucket must exist since media is owned by the upload service
func NewMinioClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	minioClient, err := minio.New(endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
			Secure: useSSL,
		})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 失敗: %v", err)
	}

	// 檢查 bucket 是否存在
	exists, err := minioClient.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, fmt.Errorf("檢查 bucket [%s] 失敗: %v", bucketName, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket [%s] 不存在", bucketName)
	}

	return &MinIOClient{
		Client:     minioClient,
		BucketName: bucketName,
		Expiry:     15 * time.Minute,
	}, nil
}

// PresignGetURL 生成一個 Presigned URL 用來獲取指定的 object
func (m *MinIOClient) PresignGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := m.Client.PresignedGetObject(ctx, m.BucketName, objectName, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("生成 Presigned URL 失敗: %w", err)
	}
	return presignedURL.String(), nil
}

// ResolveURL 已是完整網址直接回傳，否則視為 object key 產生 presigned url
func (m *MinIOClient) ResolveURL(ctx context.Context, stored string) string {
	if stored == "" || IsAbsoluteURL(stored) {
		return stored
	}

	u, err := m.PresignGetURL(ctx, strings.TrimPrefix(stored, "/"), m.Expiry)
	if err != nil {
		logger.Log.Warn("presign failed, keep stored value", zap.String("object", stored), zap.Error(err))
		return stored
	}
	return u
}

// IsAbsoluteURL check value already is a http(s) url
func IsAbsoluteURL(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}
