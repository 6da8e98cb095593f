package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ConsentCookieName holds the visitor's analytics consent preferences. The
// value is versioned so a policy change invalidates stale grants.
const ConsentCookieName = "ctc_consent"

const consentVersion = "2"

const consentCookieMaxAge = 365 * 24 * 60 * 60

// ConsentPrefs mirrors the toggles the client-side analytics loader reads.
type ConsentPrefs struct {
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// GetConsent returns the visitor's stored preferences. A missing or
// stale-version cookie reads as all-off with set=false.
func GetConsent(c echo.Context) error {
	cookie, err := c.Cookie(ConsentCookieName)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"set": false, "preferences": ConsentPrefs{}})
	}

	prefs, ok := ParseConsentValue(cookie.Value)
	return c.JSON(http.StatusOK, map[string]interface{}{"set": ok, "preferences": prefs})
}

// SetConsent stores the preferences in a versioned cookie.
func SetConsent(c echo.Context) error {
	var prefs ConsentPrefs
	if err := c.Bind(&prefs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	c.SetCookie(&http.Cookie{
		Name:     ConsentCookieName,
		Value:    EncodeConsentValue(prefs),
		Path:     "/",
		MaxAge:   consentCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, map[string]interface{}{"set": true, "preferences": prefs})
}

// EncodeConsentValue renders prefs as "<version>.a<0|1>m<0|1>".
func EncodeConsentValue(prefs ConsentPrefs) string {
	return fmt.Sprintf("%s.a%sm%s", consentVersion, flag(prefs.Analytics), flag(prefs.Marketing))
}

// ParseConsentValue decodes a cookie value; a version mismatch or malformed
// value reads as all-off.
func ParseConsentValue(value string) (ConsentPrefs, bool) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 || parts[0] != consentVersion {
		return ConsentPrefs{}, false
	}

	flags := parts[1]
	if len(flags) != 4 || flags[0] != 'a' || flags[2] != 'm' {
		return ConsentPrefs{}, false
	}
	return ConsentPrefs{
		Analytics: flags[1] == '1',
		Marketing: flags[3] == '1',
	}, true
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
