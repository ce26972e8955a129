package router

import (
	"engagement_service/internal/api/handlers"
	"engagement_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// Handlers 所有 route 需要的 handler, FeedHandler 為 nil 時不註冊 websocket
type Handlers struct {
	Comment  *handlers.CommentHandler
	Playlist *handlers.PlaylistHandler
	Feed     *handlers.CommentFeedHandler
}

// RegisterRoutes 注册留言與播放清單的路由
// @title Engagement Service API
// @version 1.0
// @description Comments and playlists of the video platform
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	v1 := app.Group("/api/v1")

	// 未登入也能看留言, 有 token 時帶出 isLiked
	v1.Get("/videos/:videoId/comments", middlewares.OptionalJWTMiddleware(), h.Comment.ListComments)

	auth := middlewares.JWTMiddleware()
	v1.Post("/videos/:videoId/comments", auth, h.Comment.AddComment)

	commentRoutes := v1.Group("/comments", auth)
	commentRoutes.Patch("/:commentId", h.Comment.UpdateComment)
	commentRoutes.Delete("/:commentId", h.Comment.DeleteComment)

	v1.Get("/users/:userId/playlists", auth, h.Playlist.ListUserPlaylists)

	playlistRoutes := v1.Group("/playlists", auth)
	playlistRoutes.Post("/", h.Playlist.CreatePlaylist)
	playlistRoutes.Get("/:playlistId", h.Playlist.GetPlaylist)
	playlistRoutes.Patch("/:playlistId", h.Playlist.UpdatePlaylist)
	playlistRoutes.Delete("/:playlistId", h.Playlist.DeletePlaylist)
	playlistRoutes.Patch("/:playlistId/videos/:videoId", h.Playlist.AddVideo)
	playlistRoutes.Delete("/:playlistId/videos/:videoId", h.Playlist.RemoveVideo)

	if h.Feed != nil {
		v1.Get("/ws/videos/:videoId/comments", auth, h.Feed.Upgrade, websocket.New(h.Feed.HandleConnection))
	}
}
