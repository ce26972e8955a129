package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// UserCollection users 由會員服務維護，這裡唯讀
	UserCollection = "users"
	// VideoCollection videos 由上傳服務維護，這裡唯讀
	VideoCollection = "videos"
)

// User 作者投影
type User struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"fullName" json:"fullName"`
	Avatar   string             `bson:"avatar" json:"avatar"`
}

// Video 影片投影
type Video struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Views       int64              `bson:"views" json:"views"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// URLResolver 把儲存的 media 值轉成可以給前端的網址
type URLResolver interface {
	ResolveURL(ctx context.Context, stored string) string
}

// NopResolver 原樣回傳
type NopResolver struct{}

// ResolveURL return stored as is
func (NopResolver) ResolveURL(_ context.Context, stored string) string {
	return stored
}
