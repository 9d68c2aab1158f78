package property

import (
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// UnitStatus represents the occupancy state of a unit
type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "VACANT"
	UnitStatusOccupied    UnitStatus = "OCCUPIED"
	UnitStatusMaintenance UnitStatus = "MAINTENANCE" // Unavailable for letting
)

// IsValid checks if the status is a valid UnitStatus
func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitStatusVacant, UnitStatusOccupied, UnitStatusMaintenance:
		return true
	}
	return false
}

// Unit represents a single rentable unit within a property
type Unit struct {
	shared.BaseAggregateRoot
	PropertyID  uuid.UUID       `json:"property_id"`
	Label       string          `json:"label"`
	Bedrooms    int             `json:"bedrooms"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	Status      UnitStatus      `json:"status"`
}

// NewUnit creates a new vacant unit in a property
func NewUnit(propertyID uuid.UUID, label string, bedrooms int, monthlyRent valueobject.Money) (*Unit, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property ID cannot be empty")
	}
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Unit label cannot be empty")
	}
	if len(label) > 50 {
		return nil, shared.NewDomainError("INVALID_LABEL", "Unit label cannot exceed 50 characters")
	}
	if bedrooms < 0 {
		return nil, shared.NewDomainError("INVALID_BEDROOMS", "Bedroom count cannot be negative")
	}
	if monthlyRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}

	return &Unit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Label:             label,
		Bedrooms:          bedrooms,
		MonthlyRent:       monthlyRent.Amount(),
		Status:            UnitStatusVacant,
	}, nil
}

// Update updates the unit's letting details
func (u *Unit) Update(label string, bedrooms int, monthlyRent valueobject.Money) error {
	if label == "" {
		return shared.NewDomainError("INVALID_LABEL", "Unit label cannot be empty")
	}
	if len(label) > 50 {
		return shared.NewDomainError("INVALID_LABEL", "Unit label cannot exceed 50 characters")
	}
	if bedrooms < 0 {
		return shared.NewDomainError("INVALID_BEDROOMS", "Bedroom count cannot be negative")
	}
	if monthlyRent.IsNegative() {
		return shared.NewDomainError("INVALID_RENT", "Monthly rent cannot be negative")
	}

	u.Label = label
	u.Bedrooms = bedrooms
	u.MonthlyRent = monthlyRent.Amount()
	u.Touch()
	u.IncrementVersion()

	return nil
}

// MarkOccupied marks the unit as occupied by an active lease
func (u *Unit) MarkOccupied() error {
	if u.Status == UnitStatusOccupied {
		return shared.NewDomainError("ALREADY_OCCUPIED", "Unit is already occupied")
	}

	u.Status = UnitStatusOccupied
	u.Touch()
	u.IncrementVersion()

	return nil
}

// MarkVacant marks the unit as vacant and available for letting
func (u *Unit) MarkVacant() {
	u.Status = UnitStatusVacant
	u.Touch()
	u.IncrementVersion()
}

// MarkUnderMaintenance takes the unit off the letting market
func (u *Unit) MarkUnderMaintenance() error {
	if u.Status == UnitStatusOccupied {
		return shared.NewDomainError("UNIT_OCCUPIED", "Cannot take an occupied unit off the market")
	}

	u.Status = UnitStatusMaintenance
	u.Touch()
	u.IncrementVersion()

	return nil
}

// IsVacant returns true if the unit can accept a new lease
func (u *Unit) IsVacant() bool {
	return u.Status == UnitStatusVacant
}

// GetMonthlyRentMoney returns the monthly rent as Money
func (u *Unit) GetMonthlyRentMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(u.MonthlyRent)
}
