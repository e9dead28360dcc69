// Package tenant keeps GORM queries inside a single brokerage tenant.
//
// Every tenant-owned table carries a tenant_id column. The scopes here add
// the WHERE tenant_id = ? condition from either an explicit ID or the
// request context, so a repository cannot accidentally read another
// brokerage's leads or applications.
//
//	db := tenant.NewTenantDB(gormDB)
//	scoped := db.WithContext(ctx)
//	scoped.Find(&leads) // tenant filter applied
package tenant

import (
	"context"
	"errors"

	"github.com/brokerhub/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrTenantIDRequired signals that no tenant ID was available for a
	// query that must be tenant scoped.
	ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

	// ErrInvalidTenantID signals a tenant ID that is not a valid UUID.
	ErrInvalidTenantID = errors.New("invalid tenant_id format")
)

// TenantScope restricts a query to one tenant.
func TenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// TenantScopeString is TenantScope for callers holding the ID as a string.
func TenantScopeString(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// TenantCreateScope stashes the tenant ID on the statement for creates.
func TenantCreateScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Set("tenant_id", tenantID)
	}
}

// TenantDB wraps a GORM DB and hands out tenant-scoped sessions.
type TenantDB struct {
	db           *gorm.DB
	tenantColumn string
	required     bool
}

// Config controls the column name and whether a tenant ID is mandatory.
type Config struct {
	TenantColumn string
	Required     bool
}

func DefaultConfig() Config {
	return Config{
		TenantColumn: "tenant_id",
		Required:     true,
	}
}

func NewTenantDB(db *gorm.DB) *TenantDB {
	return NewTenantDBWithConfig(db, DefaultConfig())
}

func NewTenantDBWithConfig(db *gorm.DB, cfg Config) *TenantDB {
	if cfg.TenantColumn == "" {
		cfg.TenantColumn = "tenant_id"
	}
	return &TenantDB{
		db:           db,
		tenantColumn: cfg.TenantColumn,
		required:     cfg.Required,
	}
}

// DB returns the underlying GORM DB without tenant scoping. Callers take on
// the isolation responsibility themselves.
func (t *TenantDB) DB() *gorm.DB {
	return t.db
}

// WithContext returns a session scoped to the tenant carried in ctx. When
// the tenant ID is missing and required, or malformed, the returned session
// fails on its first operation instead of running unscoped.
func (t *TenantDB) WithContext(ctx context.Context) *gorm.DB {
	tenantID := logger.GetTenantID(ctx)

	if tenantID == "" {
		if t.required {
			return poison(t.db.WithContext(ctx), ErrTenantIDRequired)
		}
		return t.db.WithContext(ctx)
	}

	if _, err := uuid.Parse(tenantID); err != nil {
		return poison(t.db.WithContext(ctx), ErrInvalidTenantID)
	}

	return t.db.WithContext(ctx).Scopes(TenantScopeString(tenantID))
}

// WithTenant returns a session scoped to an explicit tenant ID.
func (t *TenantDB) WithTenant(tenantID uuid.UUID) *gorm.DB {
	if tenantID == uuid.Nil {
		if t.required {
			return poison(t.db, ErrTenantIDRequired)
		}
		return t.db
	}
	return t.db.Scopes(TenantScope(tenantID))
}

// WithTenantString is WithTenant for callers holding the ID as a string.
func (t *TenantDB) WithTenantString(tenantID string) *gorm.DB {
	if tenantID == "" {
		if t.required {
			return poison(t.db, ErrTenantIDRequired)
		}
		return t.db
	}

	if _, err := uuid.Parse(tenantID); err != nil {
		return poison(t.db, ErrInvalidTenantID)
	}

	return t.db.Scopes(TenantScopeString(tenantID))
}

// ForTenant scopes a session to both a context and an explicit tenant ID.
func (t *TenantDB) ForTenant(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return t.db.WithContext(ctx).Scopes(TenantScope(tenantID))
}

// Transaction runs fn inside a database transaction whose session carries
// the tenant scope from ctx.
func (t *TenantDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tenantID := logger.GetTenantID(ctx)

	if tenantID == "" && t.required {
		return ErrTenantIDRequired
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tenantID != "" {
			tx = tx.Scopes(TenantScopeString(tenantID))
		}
		return fn(tx)
	})
}

// Unscoped returns the raw DB. Reserved for system-level operations such as
// migrations and the outbox processor.
func (t *TenantDB) Unscoped() *gorm.DB {
	return t.db
}

// SetRequired returns a copy with the required flag changed.
func (t *TenantDB) SetRequired(required bool) *TenantDB {
	return &TenantDB{
		db:           t.db,
		tenantColumn: t.tenantColumn,
		required:     required,
	}
}

// poison attaches err so the session fails on execution.
func poison(db *gorm.DB, err error) *gorm.DB {
	_ = db.AddError(err)
	return db
}
