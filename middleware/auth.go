package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/calltechcare/backend-go/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionCookieName carries the custom signed token issued by the
// cookie-based auth flow.
const SessionCookieName = "ctc_token"

// AuthMiddleware authenticates a request from either mechanism. The
// Authorization header (NextAuth-compatible bearer token) wins; the signed
// cookie is only consulted when no header is present.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractToken(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			claims, err := utils.ValidateJWT(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid user ID"})
			}

			c.Set("userID", userID)
			c.Set("userEmail", claims.Email)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("Invalid authorization header format")
		}
		return parts[1], nil
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", errors.New("No credentials provided")
	}
	return cookie.Value, nil
}
