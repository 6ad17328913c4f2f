package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "famreg/internal/errors"
	"famreg/internal/model"
	"famreg/internal/repository"
)

type parentMocks struct {
	repo      *MockParentRepository
	tagRepo   *MockTagRepository
	childRepo *MockChildRepository
	store     *MockImageStore
}

func newParentService(t *testing.T) (ParentService, parentMocks) {
	t.Helper()
	m := parentMocks{
		repo:      new(MockParentRepository),
		tagRepo:   new(MockTagRepository),
		childRepo: new(MockChildRepository),
		store:     new(MockImageStore),
	}
	// A nil cache client degrades to a no-op, same as running without redis.
	svc := NewParentService(m.repo, m.tagRepo, m.childRepo, m.store, nil)
	return svc, m
}

func (m parentMocks) assertExpectations(t *testing.T) {
	m.repo.AssertExpectations(t)
	m.tagRepo.AssertExpectations(t)
	m.childRepo.AssertExpectations(t)
	m.store.AssertExpectations(t)
}

func validPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestParentService_Create(t *testing.T) {
	t.Run("resolves relations and forces owner", func(t *testing.T) {
		svc, m := newParentService(t)

		tags := []model.Tag{{Name: "school"}}
		children := []model.Child{{Name: "Mia"}}
		m.tagRepo.On("FindByIDs", mock.Anything, []uint{1}).Return(tags, nil)
		m.childRepo.On("FindByIDs", mock.Anything, []uint{5}).Return(children, nil)
		m.repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Parent) bool {
			return p.UserID == 9 && p.Name == "John Doe" && p.Age == 44
		}), tags, children).Return(nil)

		parent, err := svc.Create(context.Background(), 9, ParentInput{
			Name:     "John Doe",
			Address:  "12 Main St",
			Age:      44,
			Job:      "teacher",
			TagIDs:   []uint{1},
			ChildIDs: []uint{5},
		})

		require.NoError(t, err)
		assert.Equal(t, uint(9), parent.UserID)
		m.assertExpectations(t)
	})

	t.Run("no relation ids skips lookups", func(t *testing.T) {
		svc, m := newParentService(t)
		m.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Parent"), []model.Tag(nil), []model.Child(nil)).Return(nil)

		_, err := svc.Create(context.Background(), 9, ParentInput{Name: "John Doe"})

		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("unknown tag id fails the write", func(t *testing.T) {
		svc, m := newParentService(t)
		m.tagRepo.On("FindByIDs", mock.Anything, []uint{1, 99}).Return([]model.Tag{{Name: "school"}}, nil)

		_, err := svc.Create(context.Background(), 9, ParentInput{Name: "John Doe", TagIDs: []uint{1, 99}})

		assert.ErrorIs(t, err, apperrors.ErrUnknownTagID)
		m.assertExpectations(t)
	})

	t.Run("unknown child id fails the write", func(t *testing.T) {
		svc, m := newParentService(t)
		m.childRepo.On("FindByIDs", mock.Anything, []uint{3}).Return([]model.Child{}, nil)

		_, err := svc.Create(context.Background(), 9, ParentInput{Name: "John Doe", ChildIDs: []uint{3}})

		assert.ErrorIs(t, err, apperrors.ErrUnknownChildID)
		m.assertExpectations(t)
	})

	t.Run("duplicate relation ids collapse", func(t *testing.T) {
		svc, m := newParentService(t)

		tags := []model.Tag{{Name: "school"}}
		m.tagRepo.On("FindByIDs", mock.Anything, []uint{1}).Return(tags, nil)
		m.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Parent"), tags, []model.Child(nil)).Return(nil)

		_, err := svc.Create(context.Background(), 9, ParentInput{Name: "John Doe", TagIDs: []uint{1, 1, 1}})

		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("duplicate child ids collapse", func(t *testing.T) {
		svc, m := newParentService(t)

		children := []model.Child{{Name: "Mia"}}
		m.childRepo.On("FindByIDs", mock.Anything, []uint{5}).Return(children, nil)
		m.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Parent"), []model.Tag(nil), children).Return(nil)

		_, err := svc.Create(context.Background(), 9, ParentInput{Name: "John Doe", ChildIDs: []uint{5, 5}})

		require.NoError(t, err)
		m.assertExpectations(t)
	})
}

func TestParentService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, m := newParentService(t)
		expected := &model.Parent{UserID: 9, Name: "John Doe"}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(expected, nil)

		parent, err := svc.Get(context.Background(), 9, 3)

		require.NoError(t, err)
		assert.Equal(t, expected, parent)
		m.assertExpectations(t)
	})

	t.Run("foreign or missing row reports not found", func(t *testing.T) {
		svc, m := newParentService(t)
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Get(context.Background(), 9, 3)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		m.assertExpectations(t)
	})
}

func TestParentService_Replace(t *testing.T) {
	t.Run("omitted relation sets are cleared", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9, Name: "Old Name", Age: 40}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Parent"),
			mock.MatchedBy(func(tags *[]model.Tag) bool { return tags != nil && len(*tags) == 0 }),
			mock.MatchedBy(func(children *[]model.Child) bool { return children != nil && len(*children) == 0 }),
		).Return(nil)

		parent, err := svc.Replace(context.Background(), 9, 3, ParentInput{Name: "New Name", Age: 41})

		require.NoError(t, err)
		assert.Equal(t, "New Name", parent.Name)
		assert.Equal(t, 41, parent.Age)
		m.assertExpectations(t)
	})

	t.Run("present relation sets replace", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9, Name: "Old Name"}
		tags := []model.Tag{{Name: "school"}}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.tagRepo.On("FindByIDs", mock.Anything, []uint{1}).Return(tags, nil)
		m.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Parent"),
			mock.MatchedBy(func(got *[]model.Tag) bool { return got != nil && len(*got) == 1 }),
			mock.MatchedBy(func(children *[]model.Child) bool { return children != nil && len(*children) == 0 }),
		).Return(nil)

		_, err := svc.Replace(context.Background(), 9, 3, ParentInput{Name: "New Name", TagIDs: []uint{1}})

		require.NoError(t, err)
		m.assertExpectations(t)
	})
}

func TestParentService_Patch(t *testing.T) {
	t.Run("only present fields change", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9, Name: "John Doe", Address: "12 Main St", Age: 44, Job: "teacher"}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Parent"),
			(*[]model.Tag)(nil), (*[]model.Child)(nil)).Return(nil)

		newJob := "engineer"
		parent, err := svc.Patch(context.Background(), 9, 3, ParentPatch{Job: &newJob})

		require.NoError(t, err)
		assert.Equal(t, "engineer", parent.Job)
		assert.Equal(t, "John Doe", parent.Name)
		assert.Equal(t, 44, parent.Age)
		m.assertExpectations(t)
	})

	t.Run("present relation set replaces entirely", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9, Name: "John Doe"}
		tags := []model.Tag{{Name: "school"}, {Name: "soccer club"}}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.tagRepo.On("FindByIDs", mock.Anything, []uint{1, 2}).Return(tags, nil)
		m.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Parent"),
			mock.MatchedBy(func(got *[]model.Tag) bool { return got != nil && len(*got) == 2 }),
			(*[]model.Child)(nil)).Return(nil)

		tagIDs := []uint{1, 2}
		_, err := svc.Patch(context.Background(), 9, 3, ParentPatch{TagIDs: &tagIDs})

		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("empty relation set clears", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9, Name: "John Doe"}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Parent"),
			mock.MatchedBy(func(got *[]model.Tag) bool { return got != nil && len(*got) == 0 }),
			(*[]model.Child)(nil)).Return(nil)

		empty := []uint{}
		_, err := svc.Patch(context.Background(), 9, 3, ParentPatch{TagIDs: &empty})

		require.NoError(t, err)
		m.assertExpectations(t)
	})
}

func TestParentService_Delete(t *testing.T) {
	t.Run("removes row and stored image", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9, ImagePath: "abc.png"}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.repo.On("Delete", mock.Anything, existing).Return(nil)
		m.store.On("Remove", "abc.png").Return(nil)

		require.NoError(t, svc.Delete(context.Background(), 9, 3))
		m.assertExpectations(t)
	})

	t.Run("no image means no file removal", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.repo.On("Delete", mock.Anything, existing).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), 9, 3))
		m.assertExpectations(t)
	})
}

func TestParentService_UploadImage(t *testing.T) {
	t.Run("invalid payload rejected", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9}
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)

		_, err := svc.UploadImage(context.Background(), 9, 3, []byte("notanimage"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidImage)
		m.assertExpectations(t)
	})

	t.Run("stores image and replaces old file", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9, ImagePath: "old.png"}
		data := validPNG(t)
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.store.On("Save", data, "png").Return("new.png", nil)
		m.repo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Parent) bool {
			return p.ImagePath == "new.png"
		}), (*[]model.Tag)(nil), (*[]model.Child)(nil)).Return(nil)
		m.store.On("Remove", "old.png").Return(nil)

		parent, err := svc.UploadImage(context.Background(), 9, 3, data)

		require.NoError(t, err)
		assert.Equal(t, "new.png", parent.ImagePath)
		m.assertExpectations(t)
	})

	t.Run("first upload has nothing to remove", func(t *testing.T) {
		svc, m := newParentService(t)
		existing := &model.Parent{UserID: 9}
		data := validPNG(t)
		m.repo.On("FindByIDForUser", mock.Anything, uint(3), uint(9)).Return(existing, nil)
		m.store.On("Save", data, "png").Return("new.png", nil)
		m.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Parent"),
			(*[]model.Tag)(nil), (*[]model.Child)(nil)).Return(nil)

		_, err := svc.UploadImage(context.Background(), 9, 3, data)

		require.NoError(t, err)
		m.assertExpectations(t)
	})
}

func TestParentService_List(t *testing.T) {
	svc, m := newParentService(t)
	filter := repository.ParentFilter{TagIDs: []uint{1}, ChildIDs: []uint{2, 3}}
	expected := []model.Parent{{UserID: 9, Name: "John Doe"}}
	m.repo.On("ListByUser", mock.Anything, uint(9), filter).Return(expected, nil)

	parents, err := svc.List(context.Background(), 9, filter)

	require.NoError(t, err)
	assert.Equal(t, expected, parents)
	m.assertExpectations(t)
}
