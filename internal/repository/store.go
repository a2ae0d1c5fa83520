package repository

import (
	"context"
	"fmt"

	"github.com/suteetoe/storecatalog/internal/model"
	"gorm.io/gorm"
)

// StoreInput holds the writable store attributes
type StoreInput struct {
	Name string
}

func loadStore(tx *gorm.DB, id uint) (*model.Store, error) {
	var store model.Store
	if err := tx.Preload("Items").First(&store, id).Error; err != nil {
		return nil, translate(err, "store", id)
	}
	sortStore(&store)
	return &store, nil
}

// CreateStore inserts a store. A duplicate name fails with the storage error.
func (r *Repository) CreateStore(ctx context.Context, in StoreInput) (*model.Store, error) {
	store := model.Store{Name: in.Name}
	if err := r.session(ctx).Create(&store).Error; err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	store.Items = []model.Item{}
	return &store, nil
}

// GetStore returns the store with its items
func (r *Repository) GetStore(ctx context.Context, id uint) (*model.Store, error) {
	return loadStore(r.session(ctx), id)
}

// ListStores returns up to limit stores after skipping offset, in id order
func (r *Repository) ListStores(ctx context.Context, offset, limit int) ([]model.Store, error) {
	stores := []model.Store{}
	err := r.session(ctx).
		Preload("Items").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	for i := range stores {
		sortStore(&stores[i])
	}
	return stores, nil
}

// UpdateStore replaces the store name
func (r *Repository) UpdateStore(ctx context.Context, id uint, in StoreInput) (*model.Store, error) {
	var store *model.Store
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &model.Store{}, id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("store", id)
		}
		if err := tx.Model(&model.Store{ID: id}).Update("name", in.Name).Error; err != nil {
			return fmt.Errorf("update store: %w", err)
		}
		store, err = loadStore(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// DeleteStore removes the store and its item memberships and returns the
// store as it was before deletion. Items are untouched.
func (r *Repository) DeleteStore(ctx context.Context, id uint) (*model.Store, error) {
	var store *model.Store
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if store, err = loadStore(tx, id); err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&model.StoreItem{}).Error; err != nil {
			return fmt.Errorf("delete store memberships: %w", err)
		}
		if err := tx.Delete(&model.Store{}, id).Error; err != nil {
			return fmt.Errorf("delete store: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
