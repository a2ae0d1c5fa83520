package repository

import (
	"context"
	"fmt"

	"github.com/suteetoe/storecatalog/internal/model"
	"gorm.io/gorm"
)

type TagInput struct {
	Name string
}

func loadTag(tx *gorm.DB, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := tx.Preload("Items").First(&tag, id).Error; err != nil {
		return nil, translate(err, "tag", id)
	}
	sortTag(&tag)
	return &tag, nil
}

func (r *Repository) CreateTag(ctx context.Context, in TagInput) (*model.Tag, error) {
	tag := model.Tag{Name: in.Name}
	if err := r.session(ctx).Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	tag.Items = []model.Item{}
	return &tag, nil
}

func (r *Repository) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	return loadTag(r.session(ctx), id)
}

func (r *Repository) ListTags(ctx context.Context, offset, limit int) ([]model.Tag, error) {
	tags := []model.Tag{}
	err := r.session(ctx).
		Preload("Items").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	for i := range tags {
		sortTag(&tags[i])
	}
	return tags, nil
}

func (r *Repository) UpdateTag(ctx context.Context, id uint, in TagInput) (*model.Tag, error) {
	var tag *model.Tag
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &model.Tag{}, id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("tag", id)
		}
		if err := tx.Model(&model.Tag{ID: id}).Update("name", in.Name).Error; err != nil {
			return fmt.Errorf("update tag: %w", err)
		}
		tag, err = loadTag(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *Repository) DeleteTag(ctx context.Context, id uint) (*model.Tag, error) {
	var tag *model.Tag
	err := r.session(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if tag, err = loadTag(tx, id); err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&model.ItemTag{}).Error; err != nil {
			return fmt.Errorf("delete tag memberships: %w", err)
		}
		if err := tx.Delete(&model.Tag{}, id).Error; err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}
