package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"famreg/internal/model"
	"famreg/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTagRepository is a mock implementation of repository.TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	args := m.Called(ctx, userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

// MockChildRepository is a mock implementation of repository.ChildRepository.
type MockChildRepository struct {
	mock.Mock
}

func (m *MockChildRepository) Create(ctx context.Context, child *model.Child) error {
	args := m.Called(ctx, child)
	return args.Error(0)
}

func (m *MockChildRepository) ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Child, error) {
	args := m.Called(ctx, userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Child), args.Error(1)
}

func (m *MockChildRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Child, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Child), args.Error(1)
}

// MockParentRepository is a mock implementation of repository.ParentRepository.
type MockParentRepository struct {
	mock.Mock
}

func (m *MockParentRepository) Create(ctx context.Context, parent *model.Parent, tags []model.Tag, children []model.Child) error {
	args := m.Called(ctx, parent, tags, children)
	return args.Error(0)
}

func (m *MockParentRepository) ListByUser(ctx context.Context, userID uint, filter repository.ParentFilter) ([]model.Parent, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Parent), args.Error(1)
}

func (m *MockParentRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Parent, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Parent), args.Error(1)
}

func (m *MockParentRepository) Update(ctx context.Context, parent *model.Parent, tags *[]model.Tag, children *[]model.Child) error {
	args := m.Called(ctx, parent, tags, children)
	return args.Error(0)
}

func (m *MockParentRepository) Delete(ctx context.Context, parent *model.Parent) error {
	args := m.Called(ctx, parent)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockImageStore is a mock implementation of ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(data []byte, ext string) (string, error) {
	args := m.Called(data, ext)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}
