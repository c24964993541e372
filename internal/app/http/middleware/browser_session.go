package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	BrowserCookie = "celerium_browser"

	browserIDKey     = "browser_id"
	browserCookieAge = 365 * 24 * time.Hour
)

// BrowserSession identifies the browser through a signed cookie holding a random id.
// A missing, tampered or expired cookie is replaced by a fresh id.
func BrowserSession(secret []byte, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session secret not configured"})
			return
		}

		id := ""
		if raw, err := c.Cookie(BrowserCookie); err == nil && raw != "" {
			parsed, err := parseBrowserToken(raw, secret)
			if err != nil {
				slog.Debug("discarding browser cookie", "error", err)
			}
			id = parsed
		}

		if id == "" {
			id = uuid.NewString()
			token, err := signBrowserToken(id, secret, time.Now())
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue browser session", "details": err.Error()})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(BrowserCookie, token, int(browserCookieAge.Seconds()), "/", "", secure, true)
		}

		c.Set(browserIDKey, id)
		c.Next()
	}
}

// BrowserID returns the id set by BrowserSession.
func BrowserID(c *gin.Context) string {
	return c.GetString(browserIDKey)
}

func signBrowserToken(id string, secret []byte, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(browserCookieAge)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseBrowserToken(raw string, secret []byte) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid browser token: %w", err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("invalid browser id: %w", err)
	}
	return claims.Subject, nil
}
