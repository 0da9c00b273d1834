package postgres

import (
	"context"
	"testing"

	"focusflow/internal/domain/entity"
	"focusflow/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOneCategory(t *testing.T, db *gorm.DB, name string) *entity.Category {
	t.Helper()

	repo := NewCategoryRepository(db)
	require.NoError(t, repo.Seed(context.Background(), []string{name}))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	for _, category := range categories {
		if category.Name == name {
			return category
		}
	}
	t.Fatalf("seeded category %q not found", name)

	return nil
}

func TestCategoryRepository_Seed(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t))

	require.NoError(t, repo.Seed(context.Background(), entity.DefaultCategoryNames))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, len(entity.DefaultCategoryNames))

	// Re-seeding does not duplicate anything.
	require.NoError(t, repo.Seed(context.Background(), entity.DefaultCategoryNames))

	categories, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, len(entity.DefaultCategoryNames))
}

func TestCategoryRepository_List_OrderedByName(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t))

	require.NoError(t, repo.Seed(context.Background(), []string{"Research", "Academic", "Later"}))

	categories, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Academic", categories[0].Name)
	assert.Equal(t, "Later", categories[1].Name)
	assert.Equal(t, "Research", categories[2].Name)
}

func TestCategoryRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := seedOneCategory(t, db, "Finance")

	found, err := repo.FindByID(context.Background(), category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Finance", found.Name)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}
