package repository

import (
	"context"
	"fmt"

	"github.com/suteetoe/storecatalog/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// linked reports whether the membership row matching conds exists
func linked(tx *gorm.DB, row interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := tx.Model(row).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// link inserts a membership row unless it is already present
func link(tx *gorm.DB, row interface{}, query string, args ...interface{}) (bool, error) {
	ok, err := linked(tx, row, query, args...)
	if err != nil || ok {
		return false, err
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// unlink deletes a membership row if it is present
func unlink(tx *gorm.DB, row interface{}, query string, args ...interface{}) (bool, error) {
	ok, err := linked(tx, row, query, args...)
	if err != nil || !ok {
		return false, err
	}
	res := tx.Where(query, args...).Delete(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AddItemToStore attaches the item to the store. Attaching an attached item is a no-op.
func (r *Repository) AddItemToStore(ctx context.Context, storeID, itemID uint) (*model.Store, error) {
	return r.changeStoreItem(ctx, storeID, itemID, OpAdd)
}

// RemoveItemFromStore detaches the item from the store. Detaching an item
// that is not attached is a no-op.
func (r *Repository) RemoveItemFromStore(ctx context.Context, storeID, itemID uint) (*model.Store, error) {
	return r.changeStoreItem(ctx, storeID, itemID, OpRemove)
}

func (r *Repository) changeStoreItem(ctx context.Context, storeID, itemID uint, op string) (*model.Store, error) {
	var (
		store   *model.Store
		changed bool
	)
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bothExist(tx, &model.Store{}, storeID, &model.Item{}, itemID, "store or item"); err != nil {
			return err
		}

		row := &model.StoreItem{StoreID: storeID, ItemID: itemID}
		query := "store_id = ? AND item_id = ?"
		var err error
		if op == OpAdd {
			changed, err = link(tx, row, query, storeID, itemID)
		} else {
			changed, err = unlink(tx, row, query, storeID, itemID)
		}
		if err != nil {
			return fmt.Errorf("%s item %d for store %d: %w", op, itemID, storeID, err)
		}

		store, err = loadStore(tx, storeID)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.observe(RelationStoreItem, op, changed)
	return store, nil
}

// AddTagToItem labels the item with the tag. Adding a present tag is a no-op.
func (r *Repository) AddTagToItem(ctx context.Context, itemID, tagID uint) (*model.Item, error) {
	return r.changeItemTag(ctx, itemID, tagID, OpAdd)
}

// RemoveTagFromItem removes the tag from the item. Removing an absent tag is a no-op.
func (r *Repository) RemoveTagFromItem(ctx context.Context, itemID, tagID uint) (*model.Item, error) {
	return r.changeItemTag(ctx, itemID, tagID, OpRemove)
}

func (r *Repository) changeItemTag(ctx context.Context, itemID, tagID uint, op string) (*model.Item, error) {
	var (
		item    *model.Item
		changed bool
	)
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		if err := bothExist(tx, &model.Item{}, itemID, &model.Tag{}, tagID, "item or tag"); err != nil {
			return err
		}

		row := &model.ItemTag{ItemID: itemID, TagID: tagID}
		query := "item_id = ? AND tag_id = ?"
		var err error
		if op == OpAdd {
			changed, err = link(tx, row, query, itemID, tagID)
		} else {
			changed, err = unlink(tx, row, query, itemID, tagID)
		}
		if err != nil {
			return fmt.Errorf("%s tag %d for item %d: %w", op, tagID, itemID, err)
		}

		item, err = loadItem(tx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.observe(RelationItemTag, op, changed)
	return item, nil
}
