package handlers

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"engagement_service/internal/notify"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordWriter 記錄寫入次數, 同時寫入時 overlap 會被標記
type recordWriter struct {
	writes  int32
	active  int32
	overlap int32
}

func (w *recordWriter) write() error {
	if atomic.AddInt32(&w.active, 1) > 1 {
		atomic.StoreInt32(&w.overlap, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&w.writes, 1)
	atomic.AddInt32(&w.active, -1)
	return nil
}

func (w *recordWriter) WriteJSON(interface{}) error { return w.write() }

func (w *recordWriter) WriteMessage(int, []byte) error { return w.write() }

func TestFeedConn(t *testing.T) {
	t.Run("writes are serialized", func(t *testing.T) {
		w := &recordWriter{}
		fc := &feedConn{w: w}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				assert.NoError(t, fc.writeJSON(notify.Event{ID: "e"}))
			}()
			go func() {
				defer wg.Done()
				assert.NoError(t, fc.writeMessage(websocket.PingMessage, nil))
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(20), atomic.LoadInt32(&w.writes))
		assert.Equal(t, int32(0), atomic.LoadInt32(&w.overlap))
	})

	t.Run("no write reaches the conn after close", func(t *testing.T) {
		w := &recordWriter{}
		fc := &feedConn{w: w}

		require.NoError(t, fc.writeJSON(notify.Event{ID: "before"}))
		fc.close()

		assert.ErrorIs(t, fc.writeJSON(notify.Event{ID: "late"}), errFeedClosed)
		assert.ErrorIs(t, fc.writeMessage(websocket.PingMessage, nil), errFeedClosed)
		assert.Equal(t, int32(1), atomic.LoadInt32(&w.writes))
	})

	t.Run("close waits for an in-flight write", func(t *testing.T) {
		w := &recordWriter{}
		fc := &feedConn{w: w}

		started := make(chan struct{})
		done := make(chan struct{})
		go func() {
			fc.mu.Lock()
			close(started)
			time.Sleep(20 * time.Millisecond)
			close(done)
			fc.mu.Unlock()
		}()
		<-started
		fc.close()

		select {
		case <-done:
		default:
			t.Fatal("close returned while a write held the lock")
		}
		assert.True(t, fc.closed)
	})
}
