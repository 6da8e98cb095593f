package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func TestRateLimitDeniesAfterBurst(t *testing.T) {
	e := echo.New()
	handler := RateLimit(1, 3)(okHandler)

	codes := []int{}
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429, 429}, codes)
}

func TestRateLimitIsPerIP(t *testing.T) {
	e := echo.New()
	handler := RateLimit(1, 1)(okHandler)

	first := httptest.NewRequest(http.MethodPost, "/", nil)
	first.RemoteAddr = "203.0.113.7:1234"
	rec1 := httptest.NewRecorder()
	assert.NoError(t, handler(e.NewContext(first, rec1)))
	assert.Equal(t, http.StatusOK, rec1.Code)

	// Exhausted for the first client...
	again := httptest.NewRequest(http.MethodPost, "/", nil)
	again.RemoteAddr = "203.0.113.7:1234"
	rec2 := httptest.NewRecorder()
	assert.NoError(t, handler(e.NewContext(again, rec2)))
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)

	// ...but a different client still gets through.
	other := httptest.NewRequest(http.MethodPost, "/", nil)
	other.RemoteAddr = "198.51.100.9:4321"
	rec3 := httptest.NewRecorder()
	assert.NoError(t, handler(e.NewContext(other, rec3)))
	assert.Equal(t, http.StatusOK, rec3.Code)
}
