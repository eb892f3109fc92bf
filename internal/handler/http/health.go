package http

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

func RegisterHealth(engine *ginext.Engine) {
	engine.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})
}
