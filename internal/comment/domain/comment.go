package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// CommentCollection comments collection
	CommentCollection = "comments"
	// LikeCollection likes collection, owned by the like service
	LikeCollection = "likes"

	// DefaultPage 頁碼從 1 開始
	DefaultPage = 1
	// DefaultLimit 每頁預設筆數
	DefaultLimit = 10
	// DefaultMaxLimit 每頁上限
	DefaultMaxLimit = 100
)

// Comment 留言文件, owner/video 建立後不可變
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Content   string             `bson:"content" json:"content"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	Video     primitive.ObjectID `bson:"video" json:"video"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Like 按讚紀錄, comment 或 video 擇一
type Like struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Comment   *primitive.ObjectID `bson:"comment,omitempty" json:"comment,omitempty"`
	Video     *primitive.ObjectID `bson:"video,omitempty" json:"video,omitempty"`
	LikedBy   primitive.ObjectID  `bson:"likedBy" json:"likedBy"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// CommentOwner author subset shown next to a comment
type CommentOwner struct {
	Username string `bson:"username" json:"username"`
	FullName string `bson:"fullName" json:"fullName"`
	Avatar   string `bson:"avatar" json:"avatar"`
}

// CommentView comment feed item
type CommentView struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Content    string             `bson:"content" json:"content"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	LikesCount int                `bson:"likesCount" json:"likesCount"`
	Owner      *CommentOwner      `bson:"owner" json:"owner"`
	IsLiked    bool               `bson:"isLiked" json:"isLiked"`
}

// PageQuery normalized paging input
type PageQuery struct {
	Page  int
	Limit int
}

// Skip documents before the page
func (q PageQuery) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

// NewPageQuery 無效或缺少的值回到預設, limit 超過 maxLimit 時截斷,
// page 截在 (page-1)*limit 不會溢位的範圍
func NewPageQuery(page, limit, maxLimit int) PageQuery {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return PageQuery{Page: page, Limit: limit}
}

// PagedResult page of items plus paging metadata
type PagedResult[T any] struct {
	Docs          []T  `json:"docs"`
	TotalDocs     int  `json:"totalDocs"`
	Limit         int  `json:"limit"`
	Page          int  `json:"page"`
	TotalPages    int  `json:"totalPages"`
	PagingCounter int  `json:"pagingCounter"`
	HasPrevPage   bool `json:"hasPrevPage"`
	HasNextPage   bool `json:"hasNextPage"`
	PrevPage      *int `json:"prevPage"`
	NextPage      *int `json:"nextPage"`
}

// NewPagedResult build paging metadata from the total count
func NewPagedResult[T any](docs []T, total int, q PageQuery) PagedResult[T] {
	if docs == nil {
		docs = []T{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}

	r := PagedResult[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         q.Limit,
		Page:          q.Page,
		TotalPages:    totalPages,
		PagingCounter: (q.Page-1)*q.Limit + 1,
		HasPrevPage:   q.Page > 1,
		HasNextPage:   q.Page < totalPages,
	}
	if r.HasPrevPage {
		prev := q.Page - 1
		r.PrevPage = &prev
	}
	if r.HasNextPage {
		next := q.Page + 1
		r.NextPage = &next
	}
	return r
}

// DeleteCommentRes delete result
type DeleteCommentRes struct {
	CommentID primitive.ObjectID `json:"commentId"`
}

// ContentReq add / update comment body
type ContentReq struct {
	Content string `json:"content" example:"nice video"`
}
