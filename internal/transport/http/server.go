// Package http assembles the echo server for the public API.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"scenariod/internal/config"
	"scenariod/internal/service"
	v1 "scenariod/internal/transport/http/v1"
)

// NewServer builds the echo instance with middleware and all v1 routes.
func NewServer(cfg *config.Config, svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RateLimiter(
		middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS)),
	))

	h := v1.NewHandler(svc)
	h.RegisterRoutes(e)

	return e
}
