package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LeaseStatus represents the lifecycle state of a lease
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusEnded      LeaseStatus = "ENDED"      // Ran to its agreed end date
	LeaseStatusTerminated LeaseStatus = "TERMINATED" // Cut short before the end date
)

// IsValid checks if the status is a valid LeaseStatus
func (s LeaseStatus) IsValid() bool {
	switch s {
	case LeaseStatusActive, LeaseStatusEnded, LeaseStatusTerminated:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (s LeaseStatus) IsTerminal() bool {
	return s == LeaseStatusEnded || s == LeaseStatusTerminated
}

// String returns the string representation of LeaseStatus
func (s LeaseStatus) String() string {
	return string(s)
}

// Lease binds a tenant to a unit for a period at an agreed rent.
// A lease is never deleted; it ends or is terminated.
type Lease struct {
	shared.BaseAggregateRoot
	TenantID   uuid.UUID       `json:"tenant_id"`
	UnitID     uuid.UUID       `json:"unit_id"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	RentAmount decimal.Decimal `json:"rent_amount"`
	Deposit    decimal.Decimal `json:"deposit"`
	Status     LeaseStatus     `json:"status"`
	EndedAt    *time.Time      `json:"ended_at,omitempty"`
}

// NewLease creates a new active lease
func NewLease(
	tenantID uuid.UUID,
	unitID uuid.UUID,
	startDate time.Time,
	endDate time.Time,
	rentAmount valueobject.Money,
	deposit valueobject.Money,
) (*Lease, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if !endDate.After(startDate) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Lease end date must be after the start date")
	}
	if !rentAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_RENT", "Rent amount must be positive")
	}
	if deposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DEPOSIT", "Deposit cannot be negative")
	}

	return &Lease{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		UnitID:            unitID,
		StartDate:         startDate,
		EndDate:           endDate,
		RentAmount:        rentAmount.Amount(),
		Deposit:           deposit.Amount(),
		Status:            LeaseStatusActive,
	}, nil
}

// End closes the lease at its natural conclusion
func (l *Lease) End() error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("LEASE_NOT_ACTIVE", "Lease has already ended")
	}

	now := time.Now()
	l.Status = LeaseStatusEnded
	l.EndedAt = &now
	l.UpdatedAt = now
	l.IncrementVersion()

	return nil
}

// Terminate cuts the lease short before its agreed end date
func (l *Lease) Terminate() error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError("LEASE_NOT_ACTIVE", "Lease has already ended")
	}

	now := time.Now()
	l.Status = LeaseStatusTerminated
	l.EndedAt = &now
	l.UpdatedAt = now
	l.IncrementVersion()

	return nil
}

// IsActive returns true if the lease is currently in force
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// GetRentMoney returns the rent amount as Money
func (l *Lease) GetRentMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(l.RentAmount)
}
