package domain

import "time"

const (
	//LikeCleanupQueue definition queue name
	LikeCleanupQueue = "like_cleanup"
)

// LikeCleanupJob 留言刪除後未完成的按讚清除工作
type LikeCleanupJob struct {
	JobID       string    `json:"job_id"`
	CommentID   string    `json:"comment_id"`
	RequestedAt time.Time `json:"requested_at"`
}
