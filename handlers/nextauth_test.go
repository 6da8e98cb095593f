package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNextAuthSignInRejectsEmptyEmail(t *testing.T) {
	e := echo.New()

	for _, body := range []string{
		`{"provider":"google","name":"Pat"}`,
		`{"provider":"credentials","password":"secret"}`,
		`{}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		err := NextAuthSignIn(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email is required")
	}
}
