package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"engagement_service/pkg/database"
	"engagement_service/pkg/logger"
	testtool "engagement_service/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPubSubIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}
	logger.SetNewNop()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, host, port, err := testtool.SetupContainer(ctx, testtool.RedisContainerRequest())
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	defer container.Terminate(context.Background())

	client, err := database.NewRedisClient(ctx, database.RedisConnection{Addr: fmt.Sprintf("%s:%s", host, port)})
	require.NoError(t, err)
	defer client.Close()

	ps := NewRedisPubSub(client)
	got := make(chan Event, 4)

	subCtx, stop := context.WithCancel(ctx)
	defer stop()
	require.NoError(t, ps.Subscribe(subCtx, "v1", func(e Event) { got <- e }))

	// 不是留言事件或別支影片的都不該收到
	require.NoError(t, ps.Publish(ctx, NewEvent(PlaylistCreated, "p1", "u1", "v1", nil)))
	require.NoError(t, ps.Publish(ctx, NewEvent(CommentCreated, "c0", "u1", "v2", nil)))
	want := NewEvent(CommentCreated, "c1", "u1", "v1", map[string]string{"content": "hi"})
	require.NoError(t, ps.Publish(ctx, want))

	select {
	case e := <-got:
		assert.Equal(t, want.ID, e.ID)
		assert.Equal(t, CommentCreated, e.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("feed event not received")
	}
	assert.Len(t, got, 0)
}
