package repository

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/suteetoe/storecatalog/internal/model"
	"github.com/suteetoe/storecatalog/pkg/database"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced row does not exist
var ErrNotFound = errors.New("record not found")

const (
	RelationStoreItem = "store_item"
	RelationItemTag   = "item_tag"

	OpAdd    = "add"
	OpRemove = "remove"
)

// AssociationObserver is notified after every attach/detach call
type AssociationObserver interface {
	ObserveAssociation(relation, op string, changed bool)
}

// Repository implements the catalog operations over a gorm connection pool.
// Every call runs on its own session bound to the caller's context.
type Repository struct {
	db       *gorm.DB
	observer AssociationObserver
}

// New creates a repository. observer may be nil.
func New(db *gorm.DB, observer AssociationObserver) *Repository {
	return &Repository{db: db, observer: observer}
}

// Ping checks that the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	return database.Ping(ctx, r.db)
}

func (r *Repository) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Repository) observe(relation, op string, changed bool) {
	if r.observer != nil {
		r.observer.ObserveAssociation(relation, op, changed)
	}
}

// Nested collections are sorted by id so responses are stable across drivers

func sortStore(store *model.Store) {
	slices.SortFunc(store.Items, func(a, b model.Item) int { return cmp.Compare(a.ID, b.ID) })
}

func sortItem(item *model.Item) {
	slices.SortFunc(item.Stores, func(a, b model.Store) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(item.Tags, func(a, b model.Tag) int { return cmp.Compare(a.ID, b.ID) })
}

func sortTag(tag *model.Tag) {
	slices.SortFunc(tag.Items, func(a, b model.Item) int { return cmp.Compare(a.ID, b.ID) })
}

func notFound(kind string, id uint) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

// exists reports whether a row of the given model with id is present
func exists(tx *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// bothExist loads the existence of both sides of an association and returns
// ErrNotFound naming both kinds when either is missing
func bothExist(tx *gorm.DB, left interface{}, leftID uint, right interface{}, rightID uint, kinds string) error {
	leftOK, err := exists(tx, left, leftID)
	if err != nil {
		return err
	}
	rightOK, err := exists(tx, right, rightID)
	if err != nil {
		return err
	}
	if !leftOK || !rightOK {
		return fmt.Errorf("%s %d/%d: %w", kinds, leftID, rightID, ErrNotFound)
	}
	return nil
}

func translate(err error, kind string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(kind, id)
	}
	return err
}
