package service

import (
	"context"

	"famreg/internal/model"
	"famreg/internal/repository"
)

// ChildService handles child operations for a single authenticated user.
type ChildService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Child, error)
	Create(ctx context.Context, userID uint, name string) (*model.Child, error)
}

type childService struct {
	repo repository.ChildRepository
}

// NewChildService builds a ChildService.
func NewChildService(repo repository.ChildRepository) ChildService {
	return &childService{repo: repo}
}

func (s *childService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Child, error) {
	return s.repo.ListByUser(ctx, userID, assignedOnly)
}

// Create stores a new child owned by the caller.
func (s *childService) Create(ctx context.Context, userID uint, name string) (*model.Child, error) {
	child := &model.Child{Name: name, UserID: userID}
	if err := s.repo.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}
