package middleware

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/domain"
)

const callerKey = "caller"

// Verifier resolves the Authorization header into a caller.
type Verifier interface {
	FromHeader(header string) (domain.Caller, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the verified caller on the context.
func AuthMiddleware(v Verifier) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		caller, err := v.FromHeader(c.GetHeader("Authorization"))
		if err != nil {
			zlog.Logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("authentication failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": "unauthorized"})
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireRole lets the request through when the caller holds any of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ginext.H{"error": "unauthorized"})
			return
		}
		if !caller.Roles.HasAny(roles...) {
			zlog.Logger.Warn().
				Str("caller", caller.ID).
				Str("route", c.FullPath()).
				Msg("caller lacks required role")
			c.AbortWithStatusJSON(http.StatusForbidden, ginext.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func CallerFrom(c *ginext.Context) (domain.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}
