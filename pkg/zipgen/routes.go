package zipgen

import (
	"github.com/labstack/echo/v4"
	"github.com/zdrivehq/zdrive/pkg/access"
	"github.com/zdrivehq/zdrive/pkg/config"
	"github.com/zdrivehq/zdrive/pkg/tree"
)

// RegisterRoutes registers the zip download route.
func RegisterRoutes(e *echo.Echo, client Client, gate *access.Gate, cfg *config.Config) {
	h := &handler{
		gate:       gate,
		zipService: NewService(tree.NewCollector(client), client, cfg.ZipMaxFiles, cfg.ZipMaxBytes),
	}

	e.GET("/api/zip", h.zip)
}

// Client combines the collector and downloader requirements so one Drive
// client value can be passed through.
type Client interface {
	tree.Lister
	Downloader
}
