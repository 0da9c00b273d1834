package postgres

import (
	"context"
	"testing"

	"focusflow/internal/domain/repository"
	"focusflow/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_Execute(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db := setupTestDB(t)
		tm := NewTransactionManager(db)

		err := tm.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
			return factory.UserRepo().Create(context.Background(), newTestUser("tx@example.com", "txuser"))
		})
		require.NoError(t, err)

		_, err = NewUserRepository(db).FindByEmail(context.Background(), "tx@example.com")
		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := setupTestDB(t)
		tm := NewTransactionManager(db)

		boom := errors.New("boom")
		err := tm.Execute(context.Background(), func(factory repository.RepositoryFactory) error {
			if err := factory.UserRepo().Create(context.Background(), newTestUser("rollback@example.com", "rollback")); err != nil {
				return err
			}

			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = NewUserRepository(db).FindByEmail(context.Background(), "rollback@example.com")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}
