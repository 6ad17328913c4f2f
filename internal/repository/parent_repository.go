package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"famreg/internal/model"
)

// ParentFilter narrows a parent listing. Ids within one set are OR-ed
// (set intersection with the parent's relations); both sets together are
// AND-ed.
type ParentFilter struct {
	TagIDs   []uint
	ChildIDs []uint
}

// ParentRepository defines parent persistence operations. Writes that touch
// both scalar columns and relation sets run in a single transaction so a
// failure partway leaves the row unchanged.
type ParentRepository interface {
	Create(ctx context.Context, parent *model.Parent, tags []model.Tag, children []model.Child) error
	ListByUser(ctx context.Context, userID uint, filter ParentFilter) ([]model.Parent, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Parent, error)
	// Update saves scalar fields and replaces relation sets. A nil set means
	// "leave untouched"; an empty non-nil set clears the relation.
	Update(ctx context.Context, parent *model.Parent, tags *[]model.Tag, children *[]model.Child) error
	Delete(ctx context.Context, parent *model.Parent) error
}

type parentRepository struct {
	db *gorm.DB
}

// NewParentRepository builds a GORM-backed repository.
func NewParentRepository(db *gorm.DB) ParentRepository {
	return &parentRepository{db: db}
}

func (r *parentRepository) Create(ctx context.Context, parent *model.Parent, tags []model.Tag, children []model.Child) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(parent).Error; err != nil {
			return err
		}
		if err := tx.Model(parent).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		if err := tx.Model(parent).Association("Children").Replace(&children); err != nil {
			return err
		}
		parent.Tags = tags
		parent.Children = children
		return nil
	})
}

func (r *parentRepository) ListByUser(ctx context.Context, userID uint, filter ParentFilter) ([]model.Parent, error) {
	q := r.db.WithContext(ctx).Model(&model.Parent{}).Where("parents.user_id = ?", userID)
	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN parent_tags ON parent_tags.parent_id = parents.id").
			Where("parent_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.ChildIDs) > 0 {
		q = q.Joins("JOIN parent_children ON parent_children.parent_id = parents.id").
			Where("parent_children.child_id IN ?", filter.ChildIDs)
	}

	var parents []model.Parent
	err := q.Distinct("parents.*").
		Order("parents.id DESC").
		Preload("Tags").
		Preload("Children").
		Find(&parents).Error
	if err != nil {
		return nil, err
	}
	return parents, nil
}

func (r *parentRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Children").
		Where("id = ? AND user_id = ?", id, userID).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepository) Update(ctx context.Context, parent *model.Parent, tags *[]model.Tag, children *[]model.Child) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(parent).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := tx.Model(parent).Association("Tags").Replace(tags); err != nil {
				return err
			}
			parent.Tags = *tags
		}
		if children != nil {
			if err := tx.Model(parent).Association("Children").Replace(children); err != nil {
				return err
			}
			parent.Children = *children
		}
		return nil
	})
}

func (r *parentRepository) Delete(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(parent).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(parent).Association("Children").Clear(); err != nil {
			return err
		}
		return tx.Delete(parent).Error
	})
}
