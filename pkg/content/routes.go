package content

import (
	"github.com/labstack/echo/v4"
	"github.com/zdrivehq/zdrive/pkg/access"
)

// RegisterRoutes registers the download, preview, and stream routes.
func RegisterRoutes(e *echo.Echo, client Getter, gate *access.Gate) {
	h := &handler{
		gate:           gate,
		contentService: NewService(client),
	}

	e.GET("/api/download", h.download)
	e.GET("/api/preview", h.preview)
	e.GET("/api/stream", h.stream)
}
