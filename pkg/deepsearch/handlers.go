package deepsearch

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/errcodes"
)

type handler struct {
	searchService *Service
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.searchService.Search(ctx, params.Q, params.Cursor)
	if err != nil {
		if errors.Is(err, ErrMalformedCursor) {
			return errcodes.MalformedCursor()
		}
		if status, ok := drive.StatusCode(err); ok {
			return errcodes.UpstreamFailed(status)
		}
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, result))
}
