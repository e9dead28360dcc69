package tenant

import (
	"strings"

	"github.com/brokerhub/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantCallback hooks into GORM's callback chain so that query, update,
// and delete statements pick up the tenant filter even when a repository
// forgets to apply a scope. It is the safety net under TenantDB.
type TenantCallback struct {
	tenantColumn string
	required     bool
}

func NewTenantCallback(tenantColumn string, required bool) *TenantCallback {
	if tenantColumn == "" {
		tenantColumn = "tenant_id"
	}
	return &TenantCallback{
		tenantColumn: tenantColumn,
		required:     required,
	}
}

// RegisterCallbacks installs the hooks. Creates are left alone because the
// application sets tenant_id explicitly when it builds an aggregate.
func (tc *TenantCallback) RegisterCallbacks(db *gorm.DB) {
	_ = db.Callback().Query().Before("gorm:query").Register("tenant:before_query", tc.applyFilter)
	_ = db.Callback().Update().Before("gorm:update").Register("tenant:before_update", tc.applyFilter)
	_ = db.Callback().Delete().Before("gorm:delete").Register("tenant:before_delete", tc.applyFilter)
	_ = db.Callback().Row().Before("gorm:row").Register("tenant:before_row", tc.applyFilter)
}

func (tc *TenantCallback) applyFilter(db *gorm.DB) {
	if db.Statement.Context == nil || db.Statement.Unscoped {
		return
	}

	// A scope or repository may already have added the condition.
	if tc.hasTenantCondition(db) {
		return
	}

	tenantID := logger.GetTenantID(db.Statement.Context)
	if tenantID == "" {
		if tc.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return
	}

	if _, err := uuid.Parse(tenantID); err != nil {
		_ = db.AddError(ErrInvalidTenantID)
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: tc.tenantColumn},
				Value:  tenantID,
			},
		},
	})
}

func (tc *TenantCallback) hasTenantCondition(db *gorm.DB) bool {
	if db.Statement.Unscoped {
		return true
	}

	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if tc.exprContainsTenant(expr) {
					return true
				}
			}
		}
	}

	// Raw SQL built ahead of the callback, e.g. via Exec.
	sql := db.Statement.SQL.String()
	if sql != "" && strings.Contains(sql, tc.tenantColumn) {
		return true
	}

	return false
}

func (tc *TenantCallback) exprContainsTenant(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == tc.tenantColumn
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == tc.tenantColumn
		}
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if tc.exprContainsTenant(cond) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if tc.exprContainsTenant(cond) {
				return true
			}
		}
	}
	return false
}

// EnableAutoTenantFilter registers the tenant callbacks on db with the
// default tenant_id column.
func EnableAutoTenantFilter(db *gorm.DB, required bool) {
	tc := NewTenantCallback("tenant_id", required)
	tc.RegisterCallbacks(db)
}

// DisableAutoTenantFilter removes the callbacks again. Intended for tests.
func DisableAutoTenantFilter(db *gorm.DB) {
	_ = db.Callback().Query().Remove("tenant:before_query")
	_ = db.Callback().Update().Remove("tenant:before_update")
	_ = db.Callback().Delete().Remove("tenant:before_delete")
	_ = db.Callback().Row().Remove("tenant:before_row")
}
