package deepsearch

import (
	"github.com/labstack/echo/v4"
	"github.com/zdrivehq/zdrive/pkg/config"
)

// RegisterRoutes registers the deep search route.
func RegisterRoutes(e *echo.Echo, client Lister, cfg *config.Config) {
	searchService := NewService(client, cfg.RootFolderID, Budget{
		MaxPages:   cfg.SearchMaxPages,
		MaxResults: cfg.SearchMaxResults,
		PageSize:   cfg.SearchPageSize,
	})

	h := &handler{
		searchService: searchService,
	}

	e.GET("/api/search", h.search)
}
