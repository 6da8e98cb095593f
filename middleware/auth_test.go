package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func protected() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"email": c.Get("userEmail").(string),
		})
	}
}

func TestAuthMiddlewareBearerToken(t *testing.T) {
	config.C.JWTSecret = "test-secret"
	userID := primitive.NewObjectID()
	token, err := utils.GenerateJWT(userID.Hex(), "pat@example.com")
	assert.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, AuthMiddleware()(protected())(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, c.Get("userID"))
}

func TestAuthMiddlewareCookieFallback(t *testing.T) {
	config.C.JWTSecret = "test-secret"
	token, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), "pat@example.com")
	assert.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	assert.NoError(t, AuthMiddleware()(protected())(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareHeaderWinsOverCookie(t *testing.T) {
	config.C.JWTSecret = "test-secret"
	goodCookie, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), "cookie@example.com")
	assert.NoError(t, err)

	// A valid cookie does not rescue a broken Authorization header.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus-token")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: goodCookie})
	rec := httptest.NewRecorder()

	assert.NoError(t, AuthMiddleware()(protected())(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareNoCredentials(t *testing.T) {
	config.C.JWTSecret = "test-secret"

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	assert.NoError(t, AuthMiddleware()(protected())(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
