package repository

import (
	"context"
	"fmt"

	"github.com/suteetoe/storecatalog/internal/model"
	"gorm.io/gorm"
)

// ItemInput holds the writable item attributes. Nil optional fields are
// left unset on create and untouched on update.
type ItemInput struct {
	Name        string
	Description *string
	Price       *float64
	Quantity    *int
}

func loadItem(tx *gorm.DB, id uint) (*model.Item, error) {
	var item model.Item
	if err := tx.Preload("Stores").Preload("Tags").First(&item, id).Error; err != nil {
		return nil, translate(err, "item", id)
	}
	sortItem(&item)
	return &item, nil
}

func (r *Repository) CreateItem(ctx context.Context, in ItemInput) (*model.Item, error) {
	item := model.Item{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
	if err := r.session(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	item.Stores = []model.Store{}
	item.Tags = []model.Tag{}
	return &item, nil
}

func (r *Repository) GetItem(ctx context.Context, id uint) (*model.Item, error) {
	return loadItem(r.session(ctx), id)
}

func (r *Repository) ListItems(ctx context.Context, offset, limit int) ([]model.Item, error) {
	items := []model.Item{}
	err := r.session(ctx).
		Preload("Stores").
		Preload("Tags").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	for i := range items {
		sortItem(&items[i])
	}
	return items, nil
}

// UpdateItem replaces the name and every optional attribute present in the input
func (r *Repository) UpdateItem(ctx context.Context, id uint, in ItemInput) (*model.Item, error) {
	changes := map[string]interface{}{"name": in.Name}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.Price != nil {
		changes["price"] = *in.Price
	}
	if in.Quantity != nil {
		changes["quantity"] = *in.Quantity
	}

	var item *model.Item
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &model.Item{}, id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("item", id)
		}
		if err := tx.Model(&model.Item{ID: id}).Updates(changes).Error; err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		item, err = loadItem(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the item with its store and tag memberships
func (r *Repository) DeleteItem(ctx context.Context, id uint) (*model.Item, error) {
	var item *model.Item
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if item, err = loadItem(tx, id); err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&model.StoreItem{}).Error; err != nil {
			return fmt.Errorf("delete item store memberships: %w", err)
		}
		if err := tx.Where("item_id = ?", id).Delete(&model.ItemTag{}).Error; err != nil {
			return fmt.Errorf("delete item tags: %w", err)
		}
		if err := tx.Delete(&model.Item{}, id).Error; err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
