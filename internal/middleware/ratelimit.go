package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit builds a per-client-IP limiter from a formatted rate such as
// "10-M" (ten requests per minute). State lives in an in-memory store, so
// limits are per process.
func RateLimit(formatted string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		log.Fatalf("invalid rate limit %q: %v", formatted, err)
	}
	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
