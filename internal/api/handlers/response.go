package handlers

import (
	"errors"
	"net/http"

	errprocess "engagement_service/pkg/err"
	"engagement_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// APIResponse 統一回應格式
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// NewAPIResponse success = statusCode < 400
func NewAPIResponse(statusCode int, data interface{}, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	}
}

func respond(c *fiber.Ctx, statusCode int, data interface{}, message string) error {
	return c.Status(statusCode).JSON(NewAPIResponse(statusCode, data, message))
}

// ErrorHandler fiber 錯誤轉成 envelope, errprocess 依 Kind 決定 status
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return respond(c, fe.Code, nil, fe.Message)
	}

	code := errprocess.StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return respond(c, code, nil, "internal server error")
	}
	return respond(c, code, nil, errprocess.Message(err))
}
