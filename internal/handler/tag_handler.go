package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/storecatalog/internal/repository"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"go.uber.org/zap"
)

type TagRequest struct {
	Name *string `json:"name" validate:"required"`
}

func (h *Handler) CreateTag(c echo.Context) error {
	var req TagRequest
	if err := bindBody(c, &req); err != nil {
		return unprocessable(c, err)
	}

	tag, err := h.repo.CreateTag(c.Request().Context(), repository.TagInput{Name: *req.Name})
	if err != nil {
		return repoError(c, err, "Tag not found")
	}

	logger.FromEcho(c).Info("Tag created", zap.Uint("tag_id", tag.ID), zap.String("name", tag.Name))
	return c.JSON(http.StatusOK, newTagResponse(tag))
}

func (h *Handler) ListTags(c echo.Context) error {
	skip, limit, err := pagination(c)
	if err != nil {
		return unprocessable(c, err)
	}

	tags, err := h.repo.ListTags(c.Request().Context(), skip, limit)
	if err != nil {
		return repoError(c, err, "Tag not found")
	}

	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, newTagResponse(&tags[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}

	tag, err := h.repo.GetTag(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "Tag not found")
	}
	return c.JSON(http.StatusOK, newTagResponse(tag))
}

func (h *Handler) UpdateTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}
	var req TagRequest
	if err := bindBody(c, &req); err != nil {
		return unprocessable(c, err)
	}

	tag, err := h.repo.UpdateTag(c.Request().Context(), id, repository.TagInput{Name: *req.Name})
	if err != nil {
		return repoError(c, err, "Tag not found")
	}

	logger.FromEcho(c).Info("Tag updated", zap.Uint("tag_id", tag.ID), zap.String("name", tag.Name))
	return c.JSON(http.StatusOK, newTagResponse(tag))
}

func (h *Handler) DeleteTag(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return unprocessable(c, err)
	}

	tag, err := h.repo.DeleteTag(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err, "Tag not found")
	}

	logger.FromEcho(c).Info("Tag deleted", zap.Uint("tag_id", tag.ID))
	return c.JSON(http.StatusOK, newTagResponse(tag))
}
