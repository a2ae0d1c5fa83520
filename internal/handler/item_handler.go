package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/storecatalog/internal/repository"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"go.uber.org/zap"
)

// ItemRequest defines the body for item creation/update requests
type ItemRequest struct {
	Name        *string  `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}

func (r ItemRequest) input() repository.ItemInput {
	return repository.ItemInput{
		Name:        *r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}

func (h *Handler) CreateItem(c echo.Context) error {
	var req ItemRequest
	if err := bindBody(c, &req); err != nil {
		return unprocessable(c, err)
	}

	item, err := h.repo.CreateItem(c.Request().Context(), req.input())
	if err != nil {
		return repoError(c, err, "Item not found")
	}

	logger.FromEcho(c).Info("Item created", zap.Uint("item_id", item.ID), zap.String("name", item.Name))
	return c.JSON(http.StatusOK, newItemResponse(item))
}

func (h *Handler) ListItems(c echo.Context) error {
	skip, limit, err := pagination(c)
	if err != nil {
		return unprocessable(c, err)
	}

	items, err := h.repo.ListItems(c.Request().Context(), skip, limit)
	if err != nil {
		return repoError(c, err, "Item not found")
	}

	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, newItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}

	item, err := h.repo.GetItem(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "Item not found")
	}
	return c.JSON(http.StatusOK, newItemResponse(item))
}

func (h *Handler) UpdateItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}
	var req ItemRequest
	if err := bindBody(c, &req); err != nil {
		return unprocessable(c, err)
	}

	item, err := h.repo.UpdateItem(c.Request().Context(), id, req.input())
	if err != nil {
		return repoError(c, err, "Item not found")
	}

	logger.FromEcho(c).Info("Item updated", zap.Uint("item_id", item.ID), zap.String("name", item.Name))
	return c.JSON(http.StatusOK, newItemResponse(item))
}

func (h *Handler) DeleteItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}

	item, err := h.repo.DeleteItem(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "Item not found")
	}

	logger.FromEcho(c).Info("Item deleted", zap.Uint("item_id", item.ID))
	return c.JSON(http.StatusOK, newItemResponse(item))
}

func (h *Handler) AddTagToItem(c echo.Context) error {
	itemID, tagID, err := parseIDPair(c, "id", "tag_id")
	if err != nil {
		return unprocessable(c, err)
	}

	item, err := h.repo.AddTagToItem(c.Request().Context(), itemID, tagID)
	if err != nil {
		return repoError(c, err, "Item or Tag not found")
	}
	return c.JSON(http.StatusOK, newItemResponse(item))
}

func (h *Handler) RemoveTagFromItem(c echo.Context) error {
	itemID, tagID, err := parseIDPair(c, "id", "tag_id")
	if err != nil {
		return unprocessable(c, err)
	}

	item, err := h.repo.RemoveTagFromItem(c.Request().Context(), itemID, tagID)
	if err != nil {
		return repoError(c, err, "Item or Tag not found")
	}
	return c.JSON(http.StatusOK, newItemResponse(item))
}
