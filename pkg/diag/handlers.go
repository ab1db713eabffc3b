package diag

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	diagService *Service
}

func (h *handler) diag(c echo.Context) error {
	report := h.diagService.Probe(c.Request().Context())
	return errors.WithStack(c.JSON(http.StatusOK, report))
}
