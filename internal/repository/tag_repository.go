package repository

import (
	"context"

	"gorm.io/gorm"

	"famreg/internal/model"
)

// TagRepository defines tag persistence operations.
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	// ListByUser returns the user's tags sorted descending by name. With
	// assignedOnly set, only tags referenced by at least one of the user's
	// parents are returned, each exactly once.
	ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	// FindByIDs resolves tag ids against the whole table, not just the
	// caller's rows. Relation payloads may reference any existing tag.
	FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository builds a GORM-backed repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	q := r.db.WithContext(ctx).Model(&model.Tag{}).Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN parent_tags ON parent_tags.tag_id = tags.id").
			Joins("JOIN parents ON parents.id = parent_tags.parent_id").
			Where("parents.user_id = ?", userID).
			Distinct("tags.*")
	}

	var tags []model.Tag
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
