package content

import (
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/zdrivehq/zdrive/pkg/access"
	"github.com/zdrivehq/zdrive/pkg/drive"
	"github.com/zdrivehq/zdrive/pkg/errcodes"
)

type handler struct {
	gate           *access.Gate
	contentService *Service
}

// FileParams represents the query parameters shared by all content routes.
type FileParams struct {
	ID string `query:"id" json:"id" validate:"required"`
}

func (h *handler) download(c echo.Context) error {
	params, err := h.authorize(c)
	if err != nil {
		return err
	}

	meta, dl, err := h.contentService.Fetch(c.Request().Context(), params.ID)
	if err != nil {
		return mapDriveError(err)
	}
	defer dl.Body.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, contentType(meta, dl))
	header.Set(echo.HeaderContentDisposition, AttachmentDisposition(displayName(meta, params.ID)))
	copyHeader(header, dl.Header, echo.HeaderContentLength)

	return h.proxy(c, dl)
}

func (h *handler) preview(c echo.Context) error {
	params, err := h.authorize(c)
	if err != nil {
		return err
	}

	meta, dl, err := h.contentService.Fetch(c.Request().Context(), params.ID)
	if err != nil {
		return mapDriveError(err)
	}
	defer dl.Body.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, contentType(meta, dl))
	header.Set(echo.HeaderContentDisposition, "inline")
	header.Set("X-Content-Type-Options", "nosniff")
	copyHeader(header, dl.Header, echo.HeaderContentLength)

	return h.proxy(c, dl)
}

func (h *handler) stream(c echo.Context) error {
	params, err := h.authorize(c)
	if err != nil {
		return err
	}

	rangeHeader := c.Request().Header.Get("Range")
	dl, err := h.contentService.Stream(c.Request().Context(), params.ID, rangeHeader)
	if err != nil {
		return mapDriveError(err)
	}
	defer dl.Body.Close()

	header := c.Response().Header()
	header.Set("Accept-Ranges", "bytes")
	copyHeader(header, dl.Header,
		echo.HeaderContentType, echo.HeaderContentLength, "Content-Range")

	return h.proxy(c, dl)
}

// authorize binds the id parameter and runs the ancestry check. Transport
// failures during the walk surface as upstream errors, a clean negative as
// forbidden; either way the request fails closed.
func (h *handler) authorize(c echo.Context) (*FileParams, error) {
	params := &FileParams{}
	if err := c.Bind(params); err != nil {
		return nil, errors.WithStack(err)
	}

	ok, err := h.gate.Check(c.Request().Context(), params.ID)
	if err != nil {
		if status, ok := drive.StatusCode(err); ok {
			return nil, errcodes.UpstreamFailed(status)
		}
		return nil, errors.WithStack(err)
	}
	if !ok {
		return nil, errcodes.Forbidden("Accessing this file")
	}
	return params, nil
}

func (h *handler) proxy(c echo.Context, dl *drive.Download) error {
	res := c.Response()
	res.WriteHeader(dl.StatusCode)
	_, err := io.Copy(res, dl.Body)
	return errors.WithStack(err)
}

func mapDriveError(err error) error {
	if drive.IsNotFound(err) {
		return errcodes.NotFound("File")
	}
	if status, ok := drive.StatusCode(err); ok {
		return errcodes.UpstreamFailed(status)
	}
	return errors.WithStack(err)
}

func contentType(meta *drive.File, dl *drive.Download) string {
	if meta.MimeType != "" {
		return meta.MimeType
	}
	if ct := dl.Header.Get(echo.HeaderContentType); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func displayName(meta *drive.File, fallback string) string {
	if meta.Name != "" {
		return meta.Name
	}
	return fallback
}

func copyHeader(dst, src map[string][]string, keys ...string) {
	for _, key := range keys {
		if values, ok := src[key]; ok && len(values) > 0 {
			dst[key] = values
		}
	}
}
