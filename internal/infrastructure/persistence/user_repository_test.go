package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brokerhub/backend/internal/domain/identity"
	"github.com/brokerhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestNewGormUserRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormUserRepository_FindByID(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "email", "first_name", "last_name", "role", "status"}).
			AddRow(userID, tenantID, "jane@example.com", "Jane", "Doe", "client", "active")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		user, err := repo.FindByID(context.Background(), userID)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, identity.RoleClient, user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByID(context.Background(), userID)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("finds user by email with lowercasing", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "email", "role", "status"}).
			AddRow(userID, tenantID, "jane@example.com", "client", "active")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE tenant_id = \$1 AND email = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "jane@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), tenantID, "Jane@Example.COM")

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for empty email", func(t *testing.T) {
		repo, _, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByEmail(context.Background(), uuid.New(), "")

		assert.Error(t, err)
	})
}

func TestGormUserRepository_FindByRole(t *testing.T) {
	t.Run("finds partners for tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		id1 := uuid.New()
		id2 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "email", "role", "status"}).
			AddRow(id1, tenantID, "broker1@example.com", "partner", "active").
			AddRow(id2, tenantID, "broker2@example.com", "partner", "active")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE tenant_id = \$1 AND role = \$2`).
			WithArgs(tenantID, identity.RolePartner).
			WillReturnRows(rows)

		users, err := repo.FindByRole(context.Background(), tenantID, identity.RolePartner, shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_Save(t *testing.T) {
	t.Run("saves user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		user, err := identity.NewUser(tenantID, "jane@example.com", "S3curePassw0rd!", identity.RoleClient)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), user)

		assert.NoError(t, err)
	})
}

func TestGormUserRepository_SaveWithLock(t *testing.T) {
	t.Run("returns conflict when version check fails", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		user, err := identity.NewUser(tenantID, "jane@example.com", "S3curePassw0rd!", identity.RoleClient)
		require.NoError(t, err)
		user.IncrementVersion()

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), user)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
	})
}

func TestGormUserRepository_ExistsByEmail(t *testing.T) {
	t.Run("returns true when user exists", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE tenant_id = \$1 AND email = \$2`).
			WithArgs(tenantID, "jane@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByEmail(context.Background(), tenantID, "jane@example.com")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false for empty email", func(t *testing.T) {
		repo, _, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		exists, err := repo.ExistsByEmail(context.Background(), uuid.New(), "")

		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormUserRepository_DeleteForTenant(t *testing.T) {
	t.Run("deletes user within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM "users" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteForTenant(context.Background(), tenantID, userID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM "users" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForTenant(context.Background(), tenantID, userID)

		assert.Equal(t, shared.ErrNotFound, err)
	})
}
