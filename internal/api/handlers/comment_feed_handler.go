package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"engagement_service/internal/notify"
	"engagement_service/pkg"
	"engagement_service/pkg/logger"
	"engagement_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// pingInterval server 端定期 ping
var pingInterval = 10 * time.Minute

// errFeedClosed 連線已結束, 不再寫入
var errFeedClosed = errors.New("comment feed closed")

// feedWriter websocket 寫入的部分
type feedWriter interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
}

// feedConn 序列化寫入; close 之後的寫入直接丟棄,
// handler 回傳後 conn 會被 fiber 回收, 不能再碰
type feedConn struct {
	mu     sync.Mutex
	w      feedWriter
	closed bool
}

func (f *feedConn) writeJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errFeedClosed
	}
	return f.w.WriteJSON(v)
}

func (f *feedConn) writeMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errFeedClosed
	}
	return f.w.WriteMessage(messageType, data)
}

// close 等進行中的寫入結束後標記關閉
func (f *feedConn) close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// FeedSubscriber subscribe a video's comment channel until ctx is done
type FeedSubscriber interface {
	Subscribe(ctx context.Context, videoID string, handler func(e notify.Event)) error
}

// CommentFeedHandler 影片留言即時推播
type CommentFeedHandler struct {
	subscriber FeedSubscriber
}

// NewCommentFeedHandler create CommentFeedHandler
func NewCommentFeedHandler(subscriber FeedSubscriber) *CommentFeedHandler {
	return &CommentFeedHandler{subscriber: subscriber}
}

// Upgrade 檢查 videoId 與 websocket upgrade, 通過後才進入 HandleConnection
func (h *CommentFeedHandler) Upgrade(c *fiber.Ctx) error {
	if _, err := pkg.ParseObjectID("videoId", c.Params("videoId")); err != nil {
		return err
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// HandleConnection 訂閱留言 channel 並推給 client, client 的訊息只用來偵測斷線
// @Summary Realtime comment feed of a video
// @Description Websocket; streams comment events of the video as JSON
// @Tags Comments
// @Security BearerAuth
// @Param videoId path string true "Video ID"
// @Success 101 {object} notify.Event
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 426 {object} APIResponse
// @Router /api/v1/ws/videos/{videoId}/comments [get]
func (h *CommentFeedHandler) HandleConnection(conn *websocket.Conn) {
	userID, _ := conn.Locals(middlewares.TokenUserID).(string)
	videoID := conn.Params("videoId")
	logger.Log.Info("comment feed open", zap.String("userID", userID), zap.String("videoID", videoID))

	ticker := time.NewTicker(pingInterval)
	ctxClose, cancel := context.WithCancel(context.Background())
	fc := &feedConn{w: conn}

	defer func() {
		ticker.Stop()
		cancel()
		fc.close()
		logger.Log.Info("comment feed close", zap.String("userID", userID), zap.String("videoID", videoID))
		conn.Close()
	}()

	//server發出ping之後client連線正常會回pong
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Debug("Received PONG", zap.String("userID", userID))
		return nil
	})

	err := h.subscriber.Subscribe(ctxClose, videoID, func(e notify.Event) {
		if err := fc.writeJSON(e); err != nil && !errors.Is(err, errFeedClosed) {
			logger.Log.Warn("feed write failed", zap.String("userID", userID), zap.Error(err))
		}
	})
	if err != nil {
		logger.Log.Error("comment feed subscribe failed", zap.String("videoID", videoID), zap.Error(err))
		_ = fc.writeMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscribe failed"))
		return
	}

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := fc.writeMessage(websocket.PingMessage, []byte("ping message")); err != nil {
					if !errors.Is(err, errFeedClosed) {
						logger.Log.Warn("Ping error", zap.Error(err))
					}
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Debug("Connection closed", zap.Error(err))
			} else {
				//直接斷線 1006
				logger.Log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
	}
}
