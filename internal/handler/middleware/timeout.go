package middleware

import (
	"context"
	"time"

	"github.com/wb-go/wbf/ginext"
)

// TimeoutMiddleware bounds the request context, and with it every store call
// made on behalf of the request.
func TimeoutMiddleware(d time.Duration) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
