package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// CORSMiddleware allows the configured frontend origins with credentials so
// the session and guest cookies travel. Localhost is added outside
// production.
func CORSMiddleware(frontendURL string, extra []string, production bool) gin.HandlerFunc {
	seen := map[string]bool{}
	var origins []string
	add := func(o string) {
		if o != "" && !seen[o] {
			seen[o] = true
			origins = append(origins, o)
		}
	}

	add(frontendURL)
	for _, o := range extra {
		add(o)
	}
	if !production {
		for _, o := range devOrigins {
			add(o)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", CSRFTokenHeaderName, RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
