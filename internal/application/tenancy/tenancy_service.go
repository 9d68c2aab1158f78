package tenancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TenancyService handles tenant and lease operations
type TenancyService struct {
	tenantRepo tenancy.TenantRepository
	leaseRepo  tenancy.LeaseRepository
	unitRepo   property.UnitRepository
	logger     *zap.Logger
}

// NewTenancyService creates a new TenancyService
func NewTenancyService(
	tenantRepo tenancy.TenantRepository,
	leaseRepo tenancy.LeaseRepository,
	unitRepo property.UnitRepository,
	logger *zap.Logger,
) *TenancyService {
	return &TenancyService{
		tenantRepo: tenantRepo,
		leaseRepo:  leaseRepo,
		unitRepo:   unitRepo,
		logger:     logger,
	}
}

// CreateTenantRequest represents a request to register a tenant
type CreateTenantRequest struct {
	FullName         string
	Email            string
	Phone            string
	IDDocument       string
	EmergencyContact string
}

// CreateTenant registers a new tenant
func (s *TenancyService) CreateTenant(ctx context.Context, req CreateTenantRequest) (*tenancy.Tenant, error) {
	existing, err := s.tenantRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tenant email: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A tenant with this email already exists")
	}

	tenant, err := tenancy.NewTenant(req.FullName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	if req.IDDocument != "" {
		if err := tenant.SetIdentification(req.IDDocument); err != nil {
			return nil, err
		}
	}
	if req.EmergencyContact != "" {
		if err := tenant.SetEmergencyContact(req.EmergencyContact); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	s.logger.Info("tenant created", zap.String("tenant_id", tenant.ID.String()))

	return tenant, nil
}

// UpdateTenant updates a tenant's contact information
func (s *TenancyService) UpdateTenant(ctx context.Context, id uuid.UUID, fullName, email, phone string) (*tenancy.Tenant, error) {
	tenant, err := s.getTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tenant.Update(fullName, email, phone); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to save tenant: %w", err)
	}

	return tenant, nil
}

// GetTenant returns a tenant by ID
func (s *TenancyService) GetTenant(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	return s.getTenant(ctx, id)
}

// ListTenants returns tenants matching the filter
func (s *TenancyService) ListTenants(ctx context.Context, filter tenancy.TenantFilter) ([]tenancy.Tenant, int64, error) {
	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}

	total, err := s.tenantRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	return tenants, total, nil
}

// CreateLeaseRequest represents a request to open a lease
type CreateLeaseRequest struct {
	TenantID   uuid.UUID
	UnitID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	RentAmount decimal.Decimal
	Deposit    decimal.Decimal
}

// CreateLease opens a new lease binding a tenant to a vacant unit.
// The unit is marked occupied as part of the operation.
func (s *TenancyService) CreateLease(ctx context.Context, req CreateLeaseRequest) (*tenancy.Lease, error) {
	if _, err := s.getTenant(ctx, req.TenantID); err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.FindByID(ctx, req.UnitID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	if !unit.IsVacant() {
		return nil, shared.NewDomainError("UNIT_NOT_VACANT", "Unit is not available for a new lease")
	}

	active, err := s.leaseRepo.FindActiveByUnitID(ctx, req.UnitID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check active lease: %w", err)
	}
	if active != nil {
		return nil, shared.NewDomainError("UNIT_ALREADY_LEASED", "Unit already has an active lease")
	}

	lease, err := tenancy.NewLease(
		req.TenantID,
		req.UnitID,
		req.StartDate,
		req.EndDate,
		valueobject.NewMoneyUSD(req.RentAmount),
		valueobject.NewMoneyUSD(req.Deposit),
	)
	if err != nil {
		return nil, err
	}

	if err := s.leaseRepo.Save(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to save lease: %w", err)
	}

	if err := unit.MarkOccupied(); err == nil {
		if err := s.unitRepo.Save(ctx, unit); err != nil {
			s.logger.Warn("failed to mark unit occupied",
				zap.String("unit_id", unit.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("lease created",
		zap.String("lease_id", lease.ID.String()),
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("unit_id", req.UnitID.String()),
	)

	return lease, nil
}

// EndLease closes a lease at its natural conclusion and frees the unit
func (s *TenancyService) EndLease(ctx context.Context, id uuid.UUID) (*tenancy.Lease, error) {
	return s.closeLease(ctx, id, (*tenancy.Lease).End)
}

// TerminateLease cuts a lease short and frees the unit
func (s *TenancyService) TerminateLease(ctx context.Context, id uuid.UUID) (*tenancy.Lease, error) {
	return s.closeLease(ctx, id, (*tenancy.Lease).Terminate)
}

// GetLease returns a lease by ID
func (s *TenancyService) GetLease(ctx context.Context, id uuid.UUID) (*tenancy.Lease, error) {
	lease, err := s.leaseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("LEASE_NOT_FOUND", "Lease not found")
		}
		return nil, fmt.Errorf("failed to get lease: %w", err)
	}
	return lease, nil
}

// ListLeases returns leases matching the filter
func (s *TenancyService) ListLeases(ctx context.Context, filter tenancy.LeaseFilter) ([]tenancy.Lease, int64, error) {
	leases, err := s.leaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leases: %w", err)
	}

	total, err := s.leaseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count leases: %w", err)
	}

	return leases, total, nil
}

func (s *TenancyService) closeLease(ctx context.Context, id uuid.UUID, transition func(*tenancy.Lease) error) (*tenancy.Lease, error) {
	lease, err := s.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := transition(lease); err != nil {
		return nil, err
	}

	if err := s.leaseRepo.Save(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to save lease: %w", err)
	}

	unit, err := s.unitRepo.FindByID(ctx, lease.UnitID)
	if err == nil {
		unit.MarkVacant()
		if err := s.unitRepo.Save(ctx, unit); err != nil {
			s.logger.Warn("failed to mark unit vacant",
				zap.String("unit_id", unit.ID.String()),
				zap.Error(err),
			)
		}
	}

	return lease, nil
}

func (s *TenancyService) getTenant(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}
