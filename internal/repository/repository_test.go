package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"famreg/internal/model"
)

// newTestDB opens a throwaway sqlite database with the full schema migrated.
// The repositories only issue portable SQL, so sqlite stands in for MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Child{},
		&model.Parent{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "irrelevant", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, userID uint, name string) model.Tag {
	t.Helper()
	tag := model.Tag{Name: name, UserID: userID}
	require.NoError(t, NewTagRepository(db).Create(context.Background(), &tag))
	return tag
}

func createTestChild(t *testing.T, db *gorm.DB, userID uint, name string) model.Child {
	t.Helper()
	child := model.Child{Name: name, UserID: userID}
	require.NoError(t, NewChildRepository(db).Create(context.Background(), &child))
	return child
}

func createTestParent(t *testing.T, db *gorm.DB, userID uint, name string, tags []model.Tag, children []model.Child) model.Parent {
	t.Helper()
	parent := model.Parent{
		UserID:  userID,
		Name:    name,
		Address: "1 Test Lane",
		Age:     40,
		Job:     "tester",
	}
	require.NoError(t, NewParentRepository(db).Create(context.Background(), &parent, tags, children))
	return parent
}

func tagNames(tags []model.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func childNames(children []model.Child) []string {
	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Name)
	}
	return names
}

func parentNames(parents []model.Parent) []string {
	names := make([]string, 0, len(parents))
	for _, parent := range parents {
		names = append(names, parent.Name)
	}
	return names
}
