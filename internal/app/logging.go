package app

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"
)

// SetupLogging initialises the global logger and applies the configured
// level. Unknown levels fall back to info.
func SetupLogging(level string) {
	zlog.Init()

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
