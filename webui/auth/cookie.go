package auth

import (
	"errors"
	"net/http"
)

// SessionCookieName is the name of the panel session cookie.
const SessionCookieName = "psai_session"

// DefaultCookieMaxAge matches the server-side session lifetime (12 hours).
const DefaultCookieMaxAge = 12 * 60 * 60

// ErrNoCookie is returned when the session cookie is absent from a request.
var ErrNoCookie = errors.New("session cookie not found")

// CookieConfig holds session cookie settings.
type CookieConfig struct {
	// Secure restricts the cookie to HTTPS. False for local development
	// against the loopback interface.
	Secure bool

	// MaxAge is the cookie lifetime in seconds.
	MaxAge int
}

// DefaultCookieConfig returns settings for a loopback-bound panel server.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{
		Secure: false,
		MaxAge: DefaultCookieMaxAge,
	}
}

// NewSessionCookie builds the session cookie for sessionID. HttpOnly and
// SameSite=Strict are always set.
func NewSessionCookie(sessionID string, config CookieConfig) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   config.MaxAge,
		Secure:   config.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie builds an expired cookie that removes the session
// cookie from the browser.
func ClearSessionCookie(config CookieConfig) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   config.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ReadSessionCookie extracts the session ID from a request.
func ReadSessionCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoCookie
	}
	return cookie.Value, nil
}
