package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the generic persistence contract aggregate repositories build on.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// TenantRepository adds tenant-scoped lookups for multi-tenant aggregates.
type TenantRepository[T any] interface {
	Repository[T]
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]T, error)
}

// Filter carries pagination, ordering and search criteria for list queries.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter is the first page of twenty, newest first.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated is one page of a list result plus the totals the client needs
// to render paging controls.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
