package service

import (
	"context"

	"famreg/internal/model"
	"famreg/internal/repository"
)

// TagService handles tag operations for a single authenticated user. Every
// method takes the caller's user id explicitly.
type TagService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Create(ctx context.Context, userID uint, name string) (*model.Tag, error)
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService builds a TagService.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	return s.repo.ListByUser(ctx, userID, assignedOnly)
}

// Create stores a new tag owned by the caller, regardless of any owner in
// the payload.
func (s *tagService) Create(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	tag := &model.Tag{Name: name, UserID: userID}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}
