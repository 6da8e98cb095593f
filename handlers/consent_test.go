package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestConsentValueRoundTrip(t *testing.T) {
	cases := []ConsentPrefs{
		{Analytics: true, Marketing: true},
		{Analytics: true, Marketing: false},
		{Analytics: false, Marketing: true},
		{},
	}

	for _, prefs := range cases {
		parsed, ok := ParseConsentValue(EncodeConsentValue(prefs))
		assert.True(t, ok)
		assert.Equal(t, prefs, parsed)
	}
}

func TestConsentValueVersionMismatch(t *testing.T) {
	// A grant recorded under an older policy version reads as all-off.
	parsed, ok := ParseConsentValue("1.a1m1")
	assert.False(t, ok)
	assert.Equal(t, ConsentPrefs{}, parsed)
}

func TestConsentValueMalformed(t *testing.T) {
	for _, value := range []string{"", "2", "2.", "2.a1", "2.x1y0", "garbage"} {
		parsed, ok := ParseConsentValue(value)
		assert.False(t, ok, "value %q", value)
		assert.Equal(t, ConsentPrefs{}, parsed)
	}
}

func TestGetConsentWithoutCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/consent", nil)
	rec := httptest.NewRecorder()

	err := GetConsent(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Set         bool         `json:"set"`
		Preferences ConsentPrefs `json:"preferences"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Set)
}

func TestSetConsentWritesVersionedCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/consent",
		strings.NewReader(`{"analytics":true,"marketing":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := SetConsent(e.NewContext(req, rec))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == ConsentCookieName {
			found = ck
		}
	}
	assert.NotNil(t, found)
	assert.Equal(t, "2.a1m0", found.Value)
}
