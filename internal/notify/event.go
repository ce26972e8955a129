package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType engagement event name
type EventType string

const (
	CommentCreated EventType = "comment.created"
	CommentUpdated EventType = "comment.updated"
	CommentDeleted EventType = "comment.deleted"

	PlaylistCreated      EventType = "playlist.created"
	PlaylistUpdated      EventType = "playlist.updated"
	PlaylistDeleted      EventType = "playlist.deleted"
	PlaylistVideoAdded   EventType = "playlist.video_added"
	PlaylistVideoRemoved EventType = "playlist.video_removed"

	// DefaultTopic kafka topic when config leaves it empty
	DefaultTopic = "engagement-events"
)

// Event 對外發布的 engagement 事件
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EntityID   string      `json:"entity_id"`
	ActorID    string      `json:"actor_id"`
	VideoID    string      `json:"video_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

// NewEvent build an event with a fresh id
func NewEvent(t EventType, entityID, actorID, videoID string, payload interface{}) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       t,
		EntityID:   entityID,
		ActorID:    actorID,
		VideoID:    videoID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher 發布事件, 失敗只回報不重試
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop publisher used when no transport is configured
type Nop struct{}

// Publish do nothing
func (Nop) Publish(context.Context, Event) error { return nil }
