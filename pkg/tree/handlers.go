package tree

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/access"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/errcodes"
)

type handler struct {
	gate      *access.Gate
	collector *Collector
}

func (h *handler) tree(c echo.Context) error {
	ctx := c.Request().Context()

	params := TreeParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	ok, err := h.gate.Check(ctx, params.ID)
	if err != nil {
		if status, ok := drive.StatusCode(err); ok {
			return errcodes.UpstreamFailed(status)
		}
		return errors.WithStack(err)
	}
	if !ok {
		return errcodes.Forbidden("Accessing this folder")
	}

	collected, err := h.collector.Collect(ctx, params.ID)
	if err != nil {
		if drive.IsNotFound(err) {
			return errcodes.NotFound("Folder")
		}
		if status, ok := drive.StatusCode(err); ok {
			return errcodes.UpstreamFailed(status)
		}
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, collected))
}
