package repository

import (
	"context"

	"gorm.io/gorm"

	"famreg/internal/model"
)

// ChildRepository defines child persistence operations.
type ChildRepository interface {
	Create(ctx context.Context, child *model.Child) error
	// ListByUser returns the user's children sorted descending by name. With
	// assignedOnly set, only children referenced by at least one of the
	// user's parents are returned, each exactly once.
	ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Child, error)
	// FindByIDs resolves child ids against the whole table, not just the
	// caller's rows. Relation payloads may reference any existing child.
	FindByIDs(ctx context.Context, ids []uint) ([]model.Child, error)
}

type childRepository struct {
	db *gorm.DB
}

// NewChildRepository builds a GORM-backed repository.
func NewChildRepository(db *gorm.DB) ChildRepository {
	return &childRepository{db: db}
}

func (r *childRepository) Create(ctx context.Context, child *model.Child) error {
	return r.db.WithContext(ctx).Create(child).Error
}

func (r *childRepository) ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Child, error) {
	q := r.db.WithContext(ctx).Model(&model.Child{}).Where("children.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN parent_children ON parent_children.child_id = children.id").
			Joins("JOIN parents ON parents.id = parent_children.parent_id").
			Where("parents.user_id = ?", userID).
			Distinct("children.*")
	}

	var children []model.Child
	if err := q.Order("children.name DESC").Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (r *childRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Child, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var children []model.Child
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}
