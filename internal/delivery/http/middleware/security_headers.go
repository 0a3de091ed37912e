package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data: https://media.licdn.com; " +
	"font-src 'self'; " +
	"connect-src 'self'; " +
	"frame-ancestors 'none'; " +
	"base-uri 'self'; " +
	"form-action 'self'"

// SecurityHeadersMiddleware adds the standard hardening headers to every
// response. The Swagger UI is served without the strict CSP.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

		if !strings.Contains(c.Request.URL.Path, "/swagger/") {
			c.Header("Content-Security-Policy", contentSecurityPolicy)
		}

		// Job lists and profiles are per identity; never cache them
		if c.GetHeader("Authorization") != "" || hasIdentityCookie(c) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		}

		c.Next()
	}
}

func hasIdentityCookie(c *gin.Context) bool {
	for _, name := range []string{SessionCookieName, GuestCookieName} {
		if v, err := c.Cookie(name); err == nil && v != "" {
			return true
		}
	}
	return false
}
