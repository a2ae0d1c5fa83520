package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/storecatalog/internal/importer"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"go.uber.org/zap"
)

// ImportStores loads the configured stores file. Stores created before a
// failure stay in place.
func (h *Handler) ImportStores(c echo.Context) error {
	log := logger.FromEcho(c)

	result, err := h.importer.Import(c.Request().Context())
	if err != nil {
		if errors.Is(err, importer.ErrFileMissing) {
			log.Warn("Import file missing", zap.Error(err))
			return detail(c, http.StatusNotFound, h.importer.FileName()+" file not found")
		}
		log.Error("Import failed", zap.Int("imported", result.Imported), zap.Error(err))
		return detail(c, http.StatusInternalServerError, "An error occurred: "+err.Error())
	}

	log.Info("Import finished", zap.Int("imported", result.Imported))
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Stores imported successfully",
	})
}
