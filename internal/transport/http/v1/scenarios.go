package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"scenariod/internal/scenario"
	"scenariod/internal/service"
)

// GenerateRequest is the request to synthesize a scenario.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateScenario synthesizes one scenario from a brief.
// POST /v1/scenarios/generate
func (h *Handler) GenerateScenario(c echo.Context) error {
	ctx := c.Request().Context()

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Prompt == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "prompt is required"})
	}

	result, err := h.service.GenerateScenario(ctx, req.Prompt)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// writeError maps pipeline errors to HTTP statuses.
func writeError(c echo.Context, err error) error {
	var promptErr *service.PromptError
	if errors.As(err, &promptErr) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": promptErr.Reason,
			"hint":  promptErr.Hint,
		})
	}

	if errors.Is(err, service.ErrGenerationTimeout) {
		return c.JSON(http.StatusGatewayTimeout, map[string]string{"error": err.Error()})
	}
	if errors.Is(err, service.ErrQueueFull) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	}

	var validationErr *scenario.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"error":    "scenario failed validation",
			"problems": validationErr.Problems,
		})
	}

	var truncErr *scenario.TruncationError
	var parseErr *scenario.ParseError
	var shapeErr *scenario.ShapeError
	if errors.As(err, &truncErr) || errors.As(err, &parseErr) || errors.As(err, &shapeErr) {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
