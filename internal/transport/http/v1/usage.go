package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetUsage returns the aggregate generation telemetry.
// GET /v1/usage
func (h *Handler) GetUsage(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.service.Usage(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, summary)
}
