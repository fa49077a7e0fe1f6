package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
)

// RateLimit sheds load with a token bucket shared by all clients.
type RateLimit struct {
	limiter *rate.Limiter
}

// NewRateLimit allows rps requests per second with bursts of up to burst
// requests. A non-positive rps disables limiting.
func NewRateLimit(rps float64, burst int) *RateLimit {
	if rps <= 0 {
		return &RateLimit{}
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimit{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Handle answers 429 once the bucket is empty.
func (m *RateLimit) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter != nil && !m.limiter.Allow() {
			response.Abort(c, apierrors.NewErrTooManyRequests())
			return
		}
		c.Next()
	}
}
