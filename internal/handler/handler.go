package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/storecatalog/internal/importer"
	"github.com/suteetoe/storecatalog/internal/model"
	"github.com/suteetoe/storecatalog/internal/repository"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultSkip  = 0
	defaultLimit = 10
)

// CatalogRepository is the storage the API layer needs
type CatalogRepository interface {
	Ping(ctx context.Context) error

	CreateStore(ctx context.Context, in repository.StoreInput) (*model.Store, error)
	GetStore(ctx context.Context, id uint) (*model.Store, error)
	ListStores(ctx context.Context, offset, limit int) ([]model.Store, error)
	UpdateStore(ctx context.Context, id uint, in repository.StoreInput) (*model.Store, error)
	DeleteStore(ctx context.Context, id uint) (*model.Store, error)

	CreateItem(ctx context.Context, in repository.ItemInput) (*model.Item, error)
	GetItem(ctx context.Context, id uint) (*model.Item, error)
	ListItems(ctx context.Context, offset, limit int) ([]model.Item, error)
	UpdateItem(ctx context.Context, id uint, in repository.ItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, id uint) (*model.Item, error)

	CreateTag(ctx context.Context, in repository.TagInput) (*model.Tag, error)
	GetTag(ctx context.Context, id uint) (*model.Tag, error)
	ListTags(ctx context.Context, offset, limit int) ([]model.Tag, error)
	UpdateTag(ctx context.Context, id uint, in repository.TagInput) (*model.Tag, error)
	DeleteTag(ctx context.Context, id uint) (*model.Tag, error)

	AddItemToStore(ctx context.Context, storeID, itemID uint) (*model.Store, error)
	RemoveItemFromStore(ctx context.Context, storeID, itemID uint) (*model.Store, error)
	AddTagToItem(ctx context.Context, itemID, tagID uint) (*model.Item, error)
	RemoveTagFromItem(ctx context.Context, itemID, tagID uint) (*model.Item, error)
}

// StoreImporter runs the bulk store import
type StoreImporter interface {
	Import(ctx context.Context) (importer.Result, error)
	FileName() string
}

// Handler serves the catalog HTTP API
type Handler struct {
	repo     CatalogRepository
	importer StoreImporter
}

func New(repo CatalogRepository, imp StoreImporter) *Handler {
	return &Handler{repo: repo, importer: imp}
}

// Register mounts every catalog route on e
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.HealthCheck)

	stores := e.Group("/stores")
	stores.POST("", h.CreateStore)
	stores.GET("", h.ListStores)
	stores.GET("/:id", h.GetStore)
	stores.PUT("/:id", h.UpdateStore)
	stores.DELETE("/:id", h.DeleteStore)
	stores.POST("/:id/items/:item_id", h.AddItemToStore)
	stores.DELETE("/:id/items/:item_id", h.RemoveItemFromStore)

	items := e.Group("/items")
	items.POST("", h.CreateItem)
	items.GET("", h.ListItems)
	items.GET("/:id", h.GetItem)
	items.PUT("/:id", h.UpdateItem)
	items.DELETE("/:id", h.DeleteItem)
	items.POST("/:id/tags/:tag_id", h.AddTagToItem)
	items.DELETE("/:id/tags/:tag_id", h.RemoveTagFromItem)

	tags := e.Group("/tags")
	tags.POST("", h.CreateTag)
	tags.GET("", h.ListTags)
	tags.GET("/:id", h.GetTag)
	tags.PUT("/:id", h.UpdateTag)
	tags.DELETE("/:id", h.DeleteTag)

	e.GET("/import_stores", h.ImportStores)
}

func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"detail": msg})
}

func unprocessable(c echo.Context, err error) error {
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	logger.FromEcho(c).Warn("Invalid request", zap.String("detail", msg))
	return detail(c, http.StatusUnprocessableEntity, msg)
}

// bindBody decodes and validates the request body
func bindBody(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

// repoError maps a repository failure to a response. Missing rows become 404
// with notFoundMsg, anything else is a server error.
func repoError(c echo.Context, err error, notFoundMsg string) error {
	log := logger.FromEcho(c)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("Entity not found", zap.String("detail", notFoundMsg), zap.Error(err))
		return detail(c, http.StatusNotFound, notFoundMsg)
	}
	log.Error("Repository operation failed", zap.Error(err))
	return detail(c, http.StatusInternalServerError, err.Error())
}

func parseID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	// ids are stored as signed 64-bit integers
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw)
	}
	return uint(id), nil
}

func parseIDPair(c echo.Context, left, right string) (uint, uint, error) {
	leftID, err := parseID(c, left)
	if err != nil {
		return 0, 0, err
	}
	rightID, err := parseID(c, right)
	if err != nil {
		return 0, 0, err
	}
	return leftID, rightID, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw)
	}
	return v, nil
}

// pagination reads skip (or its alias offset) and limit. limit has no upper bound.
func pagination(c echo.Context) (int, int, error) {
	skipParam := "skip"
	if c.QueryParam(skipParam) == "" && c.QueryParam("offset") != "" {
		skipParam = "offset"
	}
	skip, err := queryInt(c, skipParam, defaultSkip)
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}
