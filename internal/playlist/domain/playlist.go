package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// PlaylistCollection playlists collection
	PlaylistCollection = "playlists"
)

// Playlist 播放清單, videos 不重複
type Playlist struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Videos      []primitive.ObjectID `bson:"videos" json:"videos"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PlaylistSummary 使用者清單列表的一筆
type PlaylistSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	TotalVideos int                `bson:"totalVideos" json:"totalVideos"`
	TotalViews  int64              `bson:"totalViews" json:"totalViews"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PlaylistVideo video subset in the detail view
type PlaylistVideo struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	VideoFile   string             `bson:"videoFile" json:"videoFile"`
	Thumbnail   string             `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	Views       int64              `bson:"views" json:"views"`
}

// PlaylistOwner owner subset in the detail view
type PlaylistOwner struct {
	Username string `bson:"username" json:"username"`
	FullName string `bson:"fullName" json:"fullName"`
	Avatar   string `bson:"avatar" json:"avatar"`
}

// PlaylistDetail 清單詳情, 只含已發布影片
type PlaylistDetail struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	TotalVideos int                `bson:"totalVideos" json:"totalVideos"`
	TotalViews  int64              `bson:"totalViews" json:"totalViews"`
	Videos      []PlaylistVideo    `bson:"videos" json:"videos"`
	Owner       *PlaylistOwner     `bson:"owner" json:"owner"`
}

// PlaylistReq create / update body
type PlaylistReq struct {
	Name        string `json:"name" example:"Road trip"`
	Description string `json:"description" example:"songs for the drive"`
}
