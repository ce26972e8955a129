package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, e Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(CommentCreated, "c1", "u1", "v1", map[string]string{"content": "hi"})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, CommentCreated, e.Type)
	assert.Equal(t, "v1", e.VideoID)
	assert.False(t, e.OccurredAt.IsZero())

	other := NewEvent(CommentCreated, "c1", "u1", "v1", nil)
	assert.NotEqual(t, e.ID, other.ID)
}

func TestMultiPublish(t *testing.T) {
	ctx := context.Background()
	e := NewEvent(PlaylistCreated, "p1", "u1", "", nil)

	ok := new(mockPublisher)
	ok.On("Publish", ctx, e).Return(nil)
	bad := new(mockPublisher)
	bad.On("Publish", ctx, e).Return(errors.New("broker down"))
	last := new(mockPublisher)
	last.On("Publish", ctx, e).Return(nil)

	err := Multi{ok, bad, last}.Publish(ctx, e)
	assert.EqualError(t, err, "broker down")

	ok.AssertExpectations(t)
	bad.AssertExpectations(t)
	last.AssertExpectations(t)

	assert.NoError(t, Multi{}.Publish(ctx, e))
	assert.NoError(t, Nop{}.Publish(ctx, e))
}

func TestKafkaPublisher(t *testing.T) {
	ctx := context.Background()
	e := NewEvent(CommentDeleted, "c9", "u1", "v1", nil)

	w := new(mockWriter)
	w.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != "c9" {
			return false
		}
		var got Event
		if err := json.Unmarshal(msgs[0].Value, &got); err != nil {
			return false
		}
		return got.ID == e.ID && got.Type == CommentDeleted
	})).Return(nil).Once()

	require.NoError(t, NewKafkaPublisher(w).Publish(ctx, e))
	w.AssertExpectations(t)
}

func TestKafkaPublisherError(t *testing.T) {
	ctx := context.Background()
	w := new(mockWriter)
	w.On("WriteMessages", ctx, mock.Anything).Return(errors.New("leader not available"))

	err := NewKafkaPublisher(w).Publish(ctx, NewEvent(PlaylistDeleted, "p1", "u1", "", nil))
	assert.ErrorContains(t, err, "leader not available")
}

func TestCommentChannel(t *testing.T) {
	assert.Equal(t, "comments:video:abc", CommentChannel("abc"))
}
