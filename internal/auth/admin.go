package auth

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminGuard checks the admin bearer token on protected routes.
type AdminGuard struct {
	hash    string
	limiter *RateLimiter
}

// NewAdminGuard creates a guard for the given bcrypt hash. An empty hash
// disables the check.
func NewAdminGuard(hash string, cfg RateLimitConfig) *AdminGuard {
	return &AdminGuard{hash: strings.TrimSpace(hash), limiter: NewRateLimiter(cfg)}
}

// Enabled reports whether a token is required.
func (g *AdminGuard) Enabled() bool {
	return g.hash != ""
}

// Handler returns a Gin middleware that rejects requests without a valid
// admin token with 401, and locked out clients with 429.
func (g *AdminGuard) Handler() gin.HandlerFunc {
	if !g.Enabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()

		if ok, retryAfter := g.limiter.Allow(ip); !ok {
			c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many failed attempts",
				"code":  "rate_limited",
			})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || CheckToken(token, g.hash) != nil {
			if g.limiter.RecordFailure(ip) {
				log.Printf("[AUTH] Admin token lockout for %s", ip)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "admin token required",
				"code":  "unauthorized",
			})
			return
		}

		g.limiter.RecordSuccess(ip)
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
