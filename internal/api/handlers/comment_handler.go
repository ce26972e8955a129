package handlers

import (
	"strconv"

	"engagement_service/internal/comment/app"
	"engagement_service/internal/comment/domain"
	errprocess "engagement_service/pkg/err"
	"engagement_service/pkg/logger"
	"engagement_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CommentHandler 处理留言相关的 HTTP 请求
type CommentHandler struct {
	CommentUC app.CommentUseCase
}

// NewCommentHandler create CommentHandler
func NewCommentHandler(uc app.CommentUseCase) *CommentHandler {
	return &CommentHandler{
		CommentUC: uc,
	}
}

// queryInt 缺少或不是數字時回傳 0, 交給 use case 套預設值
func queryInt(c *fiber.Ctx, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// ListComments 影片留言分頁
// @Summary List comments of a video
// @Description Newest first, with author info, like count and whether the viewer liked it
// @Tags Comments
// @Produce json
// @Param videoId path string true "Video ID"
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 10"
// @Success 200 {object} APIResponse{data=domain.PagedResult[domain.CommentView]}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/videos/{videoId}/comments [get]
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	res, err := h.CommentUC.ListComments(c.UserContext(),
		c.Params("videoId"),
		queryInt(c, "page"),
		queryInt(c, "limit"),
		middlewares.UserID(c),
	)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, res, "Comments fetched successfully")
}

// AddComment 新增留言
// @Summary Add a comment to a video
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "Video ID"
// @Param request body domain.ContentReq true "comment content"
// @Success 201 {object} APIResponse{data=domain.Comment}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/videos/{videoId}/comments [post]
func (h *CommentHandler) AddComment(c *fiber.Ctx) error {
	var req domain.ContentReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Validation("invalid request")
	}

	userID := middlewares.UserID(c)
	logger.Log.Debug("AddComment request", zap.String("videoId", c.Params("videoId")), zap.String("userID", userID))

	cm, err := h.CommentUC.AddComment(c.UserContext(), c.Params("videoId"), req.Content, userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, cm, "Comment added successfully")
}

// UpdateComment 修改自己的留言
// @Summary Update own comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "Comment ID"
// @Param request body domain.ContentReq true "new content"
// @Success 200 {object} APIResponse{data=domain.Comment}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/comments/{commentId} [patch]
func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	var req domain.ContentReq
	if err := c.BodyParser(&req); err != nil {
		return errprocess.Validation("invalid request")
	}

	cm, err := h.CommentUC.UpdateComment(c.UserContext(), c.Params("commentId"), req.Content, middlewares.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, cm, "Comment updated successfully")
}

// DeleteComment 刪除自己的留言, 連帶清除按讚
// @Summary Delete own comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param commentId path string true "Comment ID"
// @Success 200 {object} APIResponse{data=domain.DeleteCommentRes}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/v1/comments/{commentId} [delete]
func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	res, err := h.CommentUC.DeleteComment(c.UserContext(), c.Params("commentId"), middlewares.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, res, "Comment deleted successfully")
}
