package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"famreg/internal/cache"
	apperrors "famreg/internal/errors"
	"famreg/internal/logging"
	"famreg/internal/model"
	"famreg/internal/repository"
	"famreg/internal/storage"
)

const parentCacheTTL = 5 * time.Minute

// ImageStore abstracts disk storage of uploaded parent images.
type ImageStore interface {
	Save(data []byte, ext string) (string, error)
	Remove(name string) error
}

var _ ImageStore = (*storage.ImageStore)(nil)

// ParentInput carries a full parent payload. Relation id sets are replaced
// wholesale; a nil set means empty.
type ParentInput struct {
	Name     string
	Address  string
	Age      int
	Job      string
	TagIDs   []uint
	ChildIDs []uint
}

// ParentPatch carries a partial parent payload. Nil fields are left
// untouched; a present relation set still replaces the whole set.
type ParentPatch struct {
	Name     *string
	Address  *string
	Age      *int
	Job      *string
	TagIDs   *[]uint
	ChildIDs *[]uint
}

// ParentService handles parent operations for a single authenticated user.
type ParentService interface {
	List(ctx context.Context, userID uint, filter repository.ParentFilter) ([]model.Parent, error)
	Get(ctx context.Context, userID, id uint) (*model.Parent, error)
	Create(ctx context.Context, userID uint, in ParentInput) (*model.Parent, error)
	Replace(ctx context.Context, userID, id uint, in ParentInput) (*model.Parent, error)
	Patch(ctx context.Context, userID, id uint, patch ParentPatch) (*model.Parent, error)
	Delete(ctx context.Context, userID, id uint) error
	UploadImage(ctx context.Context, userID, id uint, data []byte) (*model.Parent, error)
}

type parentService struct {
	repo      repository.ParentRepository
	tagRepo   repository.TagRepository
	childRepo repository.ChildRepository
	store     ImageStore
	cache     *cache.Client
}

// NewParentService builds a ParentService.
func NewParentService(
	repo repository.ParentRepository,
	tagRepo repository.TagRepository,
	childRepo repository.ChildRepository,
	store ImageStore,
	cacheClient *cache.Client,
) ParentService {
	return &parentService{
		repo:      repo,
		tagRepo:   tagRepo,
		childRepo: childRepo,
		store:     store,
		cache:     cacheClient,
	}
}

func (s *parentService) cacheKey(userID, id uint) string {
	return fmt.Sprintf("parent:%d:%d", userID, id)
}

func (s *parentService) List(ctx context.Context, userID uint, filter repository.ParentFilter) ([]model.Parent, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

// Get retrieves one of the caller's parents with caching. A row owned by
// another user reports not-found.
func (s *parentService) Get(ctx context.Context, userID, id uint) (*model.Parent, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID, id)); data != nil {
		var cached model.Parent
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	parent, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(parent); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID, id), payload, parentCacheTTL)
	}
	return parent, nil
}

func (s *parentService) find(ctx context.Context, userID, id uint) (*model.Parent, error) {
	parent, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return parent, nil
}

// Create stores a new parent owned by the caller. Relation ids are resolved
// against the whole tag/child tables; an unknown id fails the entire write.
func (s *parentService) Create(ctx context.Context, userID uint, in ParentInput) (*model.Parent, error) {
	tags, children, err := s.resolveRelations(ctx, in.TagIDs, in.ChildIDs)
	if err != nil {
		return nil, err
	}

	parent := &model.Parent{
		UserID:  userID,
		Name:    in.Name,
		Address: in.Address,
		Age:     in.Age,
		Job:     in.Job,
	}
	if err := s.repo.Create(ctx, parent, tags, children); err != nil {
		return nil, err
	}
	return parent, nil
}

// Replace applies a full update: every scalar field is overwritten and both
// relation sets are replaced, so a set omitted from the payload ends up
// empty.
func (s *parentService) Replace(ctx context.Context, userID, id uint, in ParentInput) (*model.Parent, error) {
	parent, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tags, children, err := s.resolveRelations(ctx, in.TagIDs, in.ChildIDs)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	if children == nil {
		children = []model.Child{}
	}

	parent.Name = in.Name
	parent.Address = in.Address
	parent.Age = in.Age
	parent.Job = in.Job

	if err := s.repo.Update(ctx, parent, &tags, &children); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return parent, nil
}

// Patch applies a partial update: only fields present in the payload change,
// but a present relation set replaces the stored set entirely.
func (s *parentService) Patch(ctx context.Context, userID, id uint, patch ParentPatch) (*model.Parent, error) {
	parent, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		parent.Name = *patch.Name
	}
	if patch.Address != nil {
		parent.Address = *patch.Address
	}
	if patch.Age != nil {
		parent.Age = *patch.Age
	}
	if patch.Job != nil {
		parent.Job = *patch.Job
	}

	var tags *[]model.Tag
	if patch.TagIDs != nil {
		resolved, err := s.resolveTags(ctx, *patch.TagIDs)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			resolved = []model.Tag{}
		}
		tags = &resolved
	}

	var children *[]model.Child
	if patch.ChildIDs != nil {
		resolved, err := s.resolveChildren(ctx, *patch.ChildIDs)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			resolved = []model.Child{}
		}
		children = &resolved
	}

	if err := s.repo.Update(ctx, parent, tags, children); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return parent, nil
}

// Delete removes one of the caller's parents along with its stored image.
// Referenced tags and children are detached, not deleted.
func (s *parentService) Delete(ctx context.Context, userID, id uint) error {
	parent, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, parent); err != nil {
		return err
	}
	if parent.ImagePath != "" {
		if err := s.store.Remove(parent.ImagePath); err != nil {
			logging.L().WithError(err).WithField("image", parent.ImagePath).
				Warn("failed to remove parent image")
		}
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return nil
}

// UploadImage validates and stores a new image for the parent, replacing and
// deleting any previous file.
func (s *parentService) UploadImage(ctx context.Context, userID, id uint, data []byte) (*model.Parent, error) {
	parent, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	format, err := storage.DecodeFormat(data)
	if err != nil {
		return nil, apperrors.ErrInvalidImage
	}

	name, err := s.store.Save(data, format)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	old := parent.ImagePath
	parent.ImagePath = name
	if err := s.repo.Update(ctx, parent, nil, nil); err != nil {
		return nil, err
	}

	if old != "" && old != name {
		if err := s.store.Remove(old); err != nil {
			logging.L().WithError(err).WithField("image", old).
				Warn("failed to remove replaced parent image")
		}
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID, id))
	return parent, nil
}

func (s *parentService) resolveRelations(ctx context.Context, tagIDs, childIDs []uint) ([]model.Tag, []model.Child, error) {
	tags, err := s.resolveTags(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	children, err := s.resolveChildren(ctx, childIDs)
	if err != nil {
		return nil, nil, err
	}
	return tags, children, nil
}

func (s *parentService) resolveTags(ctx context.Context, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := dedupe(ids)
	tags, err := s.tagRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, apperrors.ErrUnknownTagID
	}
	return tags, nil
}

func (s *parentService) resolveChildren(ctx context.Context, ids []uint) ([]model.Child, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := dedupe(ids)
	children, err := s.childRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(children) != len(unique) {
		return nil, apperrors.ErrUnknownChildID
	}
	return children, nil
}

// dedupe keeps the first occurrence of each id, preserving order. Relation
// membership is a set, so duplicate ids in a payload collapse.
func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
