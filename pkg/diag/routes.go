package diag

import (
	"github.com/labstack/echo/v4"
	"github.com/zdrivehq/zdrive/pkg/config"
	"github.com/zdrivehq/zdrive/pkg/drive"
)

// RegisterRoutes registers the diagnostics route.
func RegisterRoutes(e *echo.Echo, client MetadataGetter, tokens drive.TokenSource, cfg *config.Config) {
	h := &handler{
		diagService: NewService(client, tokens, cfg),
	}

	e.GET("/api/diag", h.diag)
}
