package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocCoversRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                                `json:"swagger"`
		Info    map[string]interface{}                `json:"info"`
		Paths   map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, SwaggerInfo.Title, doc.Info["title"])

	routes := map[string][]string{
		"/":                                               {"get"},
		"/debug":                                          {"post"},
		"/api/v1/videos/{videoId}/comments":               {"get", "post"},
		"/api/v1/comments/{commentId}":                    {"patch", "delete"},
		"/api/v1/ws/videos/{videoId}/comments":            {"get"},
		"/api/v1/playlists":                               {"post"},
		"/api/v1/playlists/{playlistId}":                  {"get", "patch", "delete"},
		"/api/v1/playlists/{playlistId}/videos/{videoId}": {"patch", "delete"},
		"/api/v1/users/{userId}/playlists":                {"get"},
	}
	assert.Len(t, doc.Paths, len(routes))

	for path, methods := range routes {
		t.Run(path, func(t *testing.T) {
			ops, ok := doc.Paths[path]
			require.True(t, ok, "missing path %s", path)
			assert.Len(t, ops, len(methods))
			for _, m := range methods {
				assert.Contains(t, ops, m)
			}
		})
	}
}
