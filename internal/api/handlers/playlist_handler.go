package handlers

import (
	"engagement_service/internal/playlist/app"
	"engagement_service/internal/playlist/domain"
	errprocess "engagement_service/pkg/err"
	"engagement_service/pkg/logger"
	"engagement_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PlaylistHandler 处理播放清單相关的 HTTP 请求
type PlaylistHandler struct {
	PlaylistUC app.PlaylistUseCase
}

// NewPlaylistHandler create PlaylistHandler
func NewPlaylistHandler(uc app.PlaylistUseCase) *PlaylistHandler {
	return &PlaylistHandler{
		PlaylistUC: uc,
	}
}

// CreatePlaylist 建立播放清單
// @Summary Create a playlist
// @Tags Playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.PlaylistReq true "name and description"
// @Success 201 {object} APIResponse{data=domain.Playlist}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/v1/playlists [post]
func (h *PlaylistHandler) CreatePlaylist(c *fiber.Ctx) error {
	var req domain.PlaylistReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Validation("invalid request")
	}

	userID := middlewares.UserID(c)
	logger.Log.Debug("CreatePlaylist request", zap.String("name", req.Name), zap.String("userID", userID))

	p, err := h.PlaylistUC.CreatePlaylist(c.UserContext(), req.Name, req.Description, userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, p, "Playlist created successfully")
}

// ListUserPlaylists 使用者的播放清單
// @Summary List playlists of a user
// @Tags Playlists
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} APIResponse{data=[]domain.PlaylistSummary}
// @Failure 400 {object} APIResponse
// @Router /api/v1/users/{userId}/playlists [get]
func (h *PlaylistHandler) ListUserPlaylists(c *fiber.Ctx) error {
	list, err := h.PlaylistUC.ListUserPlaylists(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, list, "User playlists fetched successfully")
}

// GetPlaylist 清單詳情, 只含已發布影片
// @Summary Get playlist detail
// @Description data is null when the playlist has videos but none of them is published
// @Tags Playlists
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "Playlist ID"
// @Success 200 {object} APIResponse{data=domain.PlaylistDetail}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/playlists/{playlistId} [get]
func (h *PlaylistHandler) GetPlaylist(c *fiber.Ctx) error {
	detail, err := h.PlaylistUC.GetPlaylist(c.UserContext(), c.Params("playlistId"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, detail, "Playlist fetched successfully")
}

// AddVideo 加入影片
// @Summary Add a video to a playlist
// @Description Allowed for the playlist owner or the video owner
// @Tags Playlists
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "Playlist ID"
// @Param videoId path string true "Video ID"
// @Success 200 {object} APIResponse{data=domain.Playlist}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/playlists/{playlistId}/videos/{videoId} [patch]
func (h *PlaylistHandler) AddVideo(c *fiber.Ctx) error {
	p, err := h.PlaylistUC.AddVideo(c.UserContext(), c.Params("playlistId"), c.Params("videoId"), middlewares.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, p, "Video added to playlist successfully")
}

// RemoveVideo 移除影片
// @Summary Remove a video from a playlist
// @Description Allowed for the playlist owner or the video owner
// @Tags Playlists
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "Playlist ID"
// @Param videoId path string true "Video ID"
// @Success 200 {object} APIResponse{data=domain.Playlist}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/playlists/{playlistId}/videos/{videoId} [delete]
func (h *PlaylistHandler) RemoveVideo(c *fiber.Ctx) error {
	p, err := h.PlaylistUC.RemoveVideo(c.UserContext(), c.Params("playlistId"), c.Params("videoId"), middlewares.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, p, "Video removed from playlist successfully")
}

// DeletePlaylist 刪除播放清單
// @Summary Delete own playlist
// @Tags Playlists
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "Playlist ID"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/playlists/{playlistId} [delete]
func (h *PlaylistHandler) DeletePlaylist(c *fiber.Ctx) error {
	if err := h.PlaylistUC.DeletePlaylist(c.UserContext(), c.Params("playlistId"), middlewares.UserID(c)); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{}, "Playlist deleted successfully")
}

// UpdatePlaylist 修改名稱與描述
// @Summary Update own playlist
// @Tags Playlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playlistId path string true "Playlist ID"
// @Param request body domain.PlaylistReq true "name and description"
// @Success 200 {object} APIResponse{data=domain.Playlist}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/playlists/{playlistId} [patch]
func (h *PlaylistHandler) UpdatePlaylist(c *fiber.Ctx) error {
	var req domain.PlaylistReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Validation("invalid request")
	}

	p, err := h.PlaylistUC.UpdatePlaylist(c.UserContext(), c.Params("playlistId"), req.Name, req.Description, middlewares.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, p, "Playlist updated successfully")
}
