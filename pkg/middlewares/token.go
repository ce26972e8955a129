package middlewares

import (
	"strings"

	errprocess "engagement_service/pkg/err"
	t_token "engagement_service/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	//QueryToken token in query name
	QueryToken = "auth"

	//CookieToken token in cookie name
	CookieToken = "auth_token"

	//TokenUserID get user form token, set c.locals name
	TokenUserID = "UserID"
)

// tokenFromRequest 依序查 Authorization header、query、cookie
func tokenFromRequest(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[len("Bearer "):])
	}
	if tokenStr := c.Query(QueryToken); tokenStr != "" {
		return tokenStr
	}
	return c.Cookies(CookieToken)
}

// JWTMiddleware validates JWT, missing or invalid token is rejected with 401
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			return errprocess.Unauthorized("missing token")
		}

		claims, err := t_token.ParseJWT(tokenStr)
		if err != nil {
			return errprocess.Unauthorized("invalid token")
		}

		c.Locals(TokenUserID, claims.UserID)
		return c.Next()
	}
}

// OptionalJWTMiddleware set user id when a valid token is present, anonymous otherwise
func OptionalJWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenStr := tokenFromRequest(c); tokenStr != "" {
			if claims, err := t_token.ParseJWT(tokenStr); err == nil {
				c.Locals(TokenUserID, claims.UserID)
			}
		}
		return c.Next()
	}
}

// UserID read the authenticated user id, empty when anonymous
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(TokenUserID).(string)
	return id
}
