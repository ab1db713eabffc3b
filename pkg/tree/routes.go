package tree

import (
	"github.com/labstack/echo/v4"
	"github.com/zdrivehq/zdrive/pkg/access"
)

// RegisterRoutes registers the tree collection route.
func RegisterRoutes(e *echo.Echo, client Lister, gate *access.Gate) {
	h := &handler{
		gate:      gate,
		collector: NewCollector(client),
	}

	e.GET("/api/tree", h.tree)
}
