package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	errprocess "engagement_service/pkg/err"
	"engagement_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIResponse(t *testing.T) {
	assert.True(t, NewAPIResponse(http.StatusCreated, nil, "ok").Success)
	assert.True(t, NewAPIResponse(http.StatusFound, nil, "").Success)
	assert.False(t, NewAPIResponse(http.StatusBadRequest, nil, "bad").Success)
}

func TestErrorHandler(t *testing.T) {
	logger.SetNewNop()

	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", errprocess.Validation("content is required"), http.StatusBadRequest, "content is required"},
		{"not found", errprocess.NotFound("video not found"), http.StatusNotFound, "video not found"},
		{"permission", errprocess.PermissionDenied("not the owner"), http.StatusForbidden, "not the owner"},
		{"unauthorized", errprocess.Unauthorized("invalid token"), http.StatusUnauthorized, "invalid token"},
		{"fiber error", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.code, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var got APIResponse
			require.NoError(t, json.Unmarshal(raw, &got))
			assert.Equal(t, tc.code, got.StatusCode)
			assert.Equal(t, tc.message, got.Message)
			assert.False(t, got.Success)
			assert.Nil(t, got.Data)
		})
	}
}
