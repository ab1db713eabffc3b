package listing

import (
	"github.com/labstack/echo/v4"
	"github.com/zdrivehq/zdrive/pkg/config"
)

// RegisterRoutes registers the flat listing route.
func RegisterRoutes(e *echo.Echo, client Lister, cfg *config.Config) {
	listingService := NewService(client, cfg.RootFolderID, cfg.ListPageSize, cfg.ListCacheSize, cfg.ListCacheTTL)

	h := &handler{
		listingService: listingService,
		cacheMaxAge:    int(cfg.ListCacheTTL.Seconds()),
	}

	e.GET("/api/list", h.list)
}
