package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	tokenStr, err := GenerateJWT("65f000000000000000000001", "engagement_service")
	require.NoError(t, err)

	claims, err := ParseJWT(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "65f000000000000000000001", claims.UserID)
	assert.Equal(t, "engagement_service", claims.Issuer)
}

func TestParseJWTRejects(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		_, err := ParseJWT("not-a-token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		claims := Claims{UserID: "u1"}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))
		require.NoError(t, err)
		_, err = ParseJWT(s)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		claims := Claims{
			UserID: "u1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret)
		require.NoError(t, err)
		_, err = ParseJWT(s)
		assert.Error(t, err)
	})

	t.Run("missing user id", func(t *testing.T) {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString(JWTSecret)
		require.NoError(t, err)
		_, err = ParseJWT(s)
		assert.Error(t, err)
	})
}
