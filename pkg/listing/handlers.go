package listing

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/errcodes"
)

type handler struct {
	listingService *Service
	cacheMaxAge    int
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	list, err := h.listingService.List(ctx, params.FolderID, params.PageToken)
	if err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Folder")
		}
		if status, ok := drive.StatusCode(err); ok {
			return errcodes.UpstreamFailed(status)
		}
		return errors.WithStack(err)
	}

	// Edge caches may hold listings briefly as well.
	c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.cacheMaxAge))

	return errors.WithStack(c.JSON(http.StatusOK, list))
}
