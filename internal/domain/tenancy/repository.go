package tenancy

import (
	"context"

	"github.com/google/uuid"
)

// TenantFilter represents query filter options for tenants
type TenantFilter struct {
	Page     int
	PageSize int
	Search   string
}

// TenantRepository is the persistence contract for tenants
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByEmail(ctx context.Context, email string) (*Tenant, error)
	FindAll(ctx context.Context, filter TenantFilter) ([]Tenant, error)
	Count(ctx context.Context, filter TenantFilter) (int64, error)
	Save(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeaseFilter represents query filter options for leases
type LeaseFilter struct {
	Page     int
	PageSize int
	TenantID *uuid.UUID
	UnitID   *uuid.UUID
	Status   *LeaseStatus
}

// LeaseRepository is the persistence contract for leases.
// Leases have no delete; ending one is a state transition.
type LeaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lease, error)
	FindAll(ctx context.Context, filter LeaseFilter) ([]Lease, error)
	FindActiveByUnitID(ctx context.Context, unitID uuid.UUID) (*Lease, error)
	Count(ctx context.Context, filter LeaseFilter) (int64, error)
	Save(ctx context.Context, lease *Lease) error
}
