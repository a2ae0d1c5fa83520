package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"go.uber.org/zap"
)

// HealthCheck handles the health check endpoint
func (h *Handler) HealthCheck(c echo.Context) error {
	if err := h.repo.Ping(c.Request().Context()); err != nil {
		logger.FromEcho(c).Error("Database ping failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status": "unavailable",
			"detail": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
