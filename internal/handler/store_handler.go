package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/storecatalog/internal/repository"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"go.uber.org/zap"
)

// StoreRequest defines the body for store creation/update requests.
// name must be present, an empty string is allowed.
type StoreRequest struct {
	Name *string `json:"name" validate:"required"`
}

// CreateStore handles creating a new store
func (h *Handler) CreateStore(c echo.Context) error {
	log := logger.FromEcho(c)

	var req StoreRequest
	if err := bindBody(c, &req); err != nil {
		return unprocessable(c, err)
	}

	store, err := h.repo.CreateStore(c.Request().Context(), repository.StoreInput{Name: *req.Name})
	if err != nil {
		return repoError(c, err, "Store not found")
	}

	log.Info("Store created", zap.Uint("store_id", store.ID), zap.String("name", store.Name))
	return c.JSON(http.StatusOK, newStoreResponse(store))
}

// ListStores handles retrieving a page of stores
func (h *Handler) ListStores(c echo.Context) error {
	skip, limit, err := pagination(c)
	if err != nil {
		return unprocessable(c, err)
	}

	stores, err := h.repo.ListStores(c.Request().Context(), skip, limit)
	if err != nil {
		return repoError(c, err, "Store not found")
	}

	out := make([]StoreResponse, 0, len(stores))
	for i := range stores {
		out = append(out, newStoreResponse(&stores[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// GetStore handles retrieving a single store by ID
func (h *Handler) GetStore(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}

	store, err := h.repo.GetStore(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "Store not found")
	}
	return c.JSON(http.StatusOK, newStoreResponse(store))
}

// UpdateStore handles renaming an existing store
func (h *Handler) UpdateStore(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}
	var req StoreRequest
	if err := bindBody(c, &req); err != nil {
		return unprocessable(c, err)
	}

	store, err := h.repo.UpdateStore(c.Request().Context(), id, repository.StoreInput{Name: *req.Name})
	if err != nil {
		return repoError(c, err, "Store not found")
	}

	log.Info("Store updated", zap.Uint("store_id", store.ID), zap.String("name", store.Name))
	return c.JSON(http.StatusOK, newStoreResponse(store))
}

// DeleteStore handles deleting a store and returns its last state
func (h *Handler) DeleteStore(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}

	store, err := h.repo.DeleteStore(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "Store not found")
	}

	log.Info("Store deleted", zap.Uint("store_id", store.ID), zap.Int("detached_items", len(store.Items)))
	return c.JSON(http.StatusOK, newStoreResponse(store))
}

// AddItemToStore handles attaching an item to a store
func (h *Handler) AddItemToStore(c echo.Context) error {
	storeID, itemID, err := parseIDPair(c, "id", "item_id")
	if err != nil {
		return unprocessable(c, err)
	}

	store, err := h.repo.AddItemToStore(c.Request().Context(), storeID, itemID)
	if err != nil {
		return repoError(c, err, "Store or Item not found")
	}

	logger.FromEcho(c).Info("Item attached to store",
		zap.Uint("store_id", storeID),
		zap.Uint("item_id", itemID),
		zap.Int("items", len(store.Items)))
	return c.JSON(http.StatusOK, newStoreResponse(store))
}

// RemoveItemFromStore handles detaching an item from a store
func (h *Handler) RemoveItemFromStore(c echo.Context) error {
	storeID, itemID, err := parseIDPair(c, "id", "item_id")
	if err != nil {
		return unprocessable(c, err)
	}

	store, err := h.repo.RemoveItemFromStore(c.Request().Context(), storeID, itemID)
	if err != nil {
		return repoError(c, err, "Store or Item not found")
	}

	logger.FromEcho(c).Info("Item detached from store",
		zap.Uint("store_id", storeID),
		zap.Uint("item_id", itemID),
		zap.Int("items", len(store.Items)))
	return c.JSON(http.StatusOK, newStoreResponse(store))
}
