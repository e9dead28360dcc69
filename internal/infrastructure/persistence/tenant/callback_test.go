package tenant

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantCallback_RegisterCallbacks(t *testing.T) {
	db, _, mockDB := openScopedDB(t)
	defer mockDB.Close()

	tc := NewTenantCallback("tenant_id", true)
	tc.RegisterCallbacks(db)
}

func TestNewTenantCallback_DefaultColumn(t *testing.T) {
	tc := NewTenantCallback("", true)

	assert.Equal(t, "tenant_id", tc.tenantColumn)
	assert.True(t, tc.required)
}

func TestNewTenantCallback_CustomColumn(t *testing.T) {
	tc := NewTenantCallback("org_id", false)

	assert.Equal(t, "org_id", tc.tenantColumn)
	assert.False(t, tc.required)
}

func TestTenantCallback_RequiredEnforcement(t *testing.T) {
	db, _, mockDB := openScopedDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, true)

	var records []commissionRecord
	err := db.WithContext(context.Background()).Find(&records).Error

	assert.ErrorIs(t, err, ErrTenantIDRequired)
}

func TestTenantCallback_InvalidUUID(t *testing.T) {
	db, _, mockDB := openScopedDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, true)

	var records []commissionRecord
	err := db.WithContext(tenantContext("acme-brokerage")).Find(&records).Error

	assert.ErrorIs(t, err, ErrInvalidTenantID)
}

func TestTenantCallback_NotRequired(t *testing.T) {
	db, mock, mockDB := openScopedDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, false)

	mock.ExpectQuery(`SELECT \* FROM "commissions"`).
		WillReturnRows(sqlmock.NewRows(commissionColumns))

	var records []commissionRecord
	err := db.WithContext(context.Background()).Find(&records).Error

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnableAndDisableAutoTenantFilter(t *testing.T) {
	db, mock, mockDB := openScopedDB(t)
	defer mockDB.Close()

	EnableAutoTenantFilter(db, true)
	DisableAutoTenantFilter(db)

	// With the callbacks removed a query without a tenant runs unscoped.
	mock.ExpectQuery(`SELECT \* FROM "commissions"`).
		WillReturnRows(sqlmock.NewRows(commissionColumns))

	var records []commissionRecord
	err := db.WithContext(context.Background()).Find(&records).Error

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
