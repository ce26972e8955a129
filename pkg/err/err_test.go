package errprocess

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"engagement_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	logger.SetNewNop()

	cases := []struct {
		name string
		err  error
		code int
		kind Kind
	}{
		{"validation", Validation("content is required"), http.StatusBadRequest, KindValidation},
		{"not found", NotFound("video not found"), http.StatusNotFound, KindNotFound},
		{"permission", PermissionDenied("not the owner"), http.StatusForbidden, KindPermissionDenied},
		{"unauthorized", Unauthorized("missing token"), http.StatusUnauthorized, KindUnauthorized},
		{"internal", Internal("insert failed", errors.New("socket closed")), http.StatusInternalServerError, KindInternal},
		{"set", Set("something broke"), http.StatusInternalServerError, KindInternal},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, KindInternal},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.code, StatusCode(c.err))
			assert.Equal(t, c.kind, KindOf(c.err))
		})
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	logger.SetNewNop()

	err := fmt.Errorf("add comment: %w", NotFound("video not found"))
	assert.True(t, Is(err, KindNotFound))
	assert.Equal(t, "video not found", Message(err))
}

func TestInternalUnwrap(t *testing.T) {
	logger.SetNewNop()

	cause := errors.New("connection reset")
	err := Internal("update failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "update failed", Message(err))
	assert.Contains(t, err.Error(), "connection reset")
}
