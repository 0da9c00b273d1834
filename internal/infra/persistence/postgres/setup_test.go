package postgres

import (
	"testing"

	"focusflow/internal/infra/persistence/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.SessionModel{},
		&model.CategoryModel{},
		&model.TaskModel{},
	)
	require.NoError(t, err, "failed to migrate tables")

	return db
}
