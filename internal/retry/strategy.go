package retry

import (
	"time"

	"github.com/wb-go/wbf/retry"

	"github.com/OlivierMantz/CommentAPI/internal/config"
)

var DefaultStrategy = retry.Strategy{
	Attempts: 3,
	Delay:    100 * time.Millisecond,
	Backoff:  2.0,
}

// FromConfig builds the store retry strategy, falling back to
// DefaultStrategy for unset values.
func FromConfig(cfg config.RetryConfig) retry.Strategy {
	s := DefaultStrategy
	if cfg.Attempts > 0 {
		s.Attempts = cfg.Attempts
	}
	if cfg.DelayMs > 0 {
		s.Delay = time.Duration(cfg.DelayMs) * time.Millisecond
	}
	if cfg.Backoff >= 1 {
		s.Backoff = cfg.Backoff
	}
	return s
}
