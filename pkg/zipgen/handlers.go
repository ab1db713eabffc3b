package zipgen

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/access"
	"github.com/zdrivehq/zdrive/pkg/content"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/errcodes"
	"github.com/zdrivehq/zdrive/pkg/tree"
)

type handler struct {
	gate       *access.Gate
	zipService *Service
}

// ZipParams represents the query parameters for a zip download.
type ZipParams struct {
	ID string `query:"id" json:"id" validate:"required"`
}

func (h *handler) zip(c echo.Context) error {
	ctx := c.Request().Context()

	params := ZipParams{}
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

	collected, err := h.zipService.Plan(ctx, params.ID)
	if err != nil {
		switch {
		case errors.Is(err, tree.ErrTooManyFiles):
			return errcodes.ZipTooLarge("too many files")
		case errors.Is(err, tree.ErrTooLarge):
			return errcodes.ZipTooLarge("total size over the limit")
		case drive.IsNotFound(err):
			return errcodes.NotFound("Folder")
		}
		if status, ok := drive.StatusCode(err); ok {
			return errcodes.UpstreamFailed(status)
		}
		return errors.WithStack(err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/zip")
	res.Header().Set(echo.HeaderContentDisposition, content.AttachmentDisposition(collected.Root.Name+".zip"))
	res.WriteHeader(http.StatusOK)

	// The response is already streaming; a failure past this point can only
	// be logged, not turned into an error payload.
	return h.zipService.WriteArchive(ctx, collected, res)
}
