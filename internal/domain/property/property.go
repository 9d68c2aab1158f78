package property

import (
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// Property represents a building or estate owned by a landlord.
// Individual rentable units belong to a property.
type Property struct {
	shared.BaseAggregateRoot
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city,omitempty"`
	LandlordID uuid.UUID `json:"landlord_id"`
	Notes      string    `json:"notes,omitempty"`
}

// NewProperty creates a new property for a landlord
func NewProperty(name, address, city string, landlordID uuid.UUID) (*Property, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Property address cannot be empty")
	}
	if len(address) > 500 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Property address cannot exceed 500 characters")
	}
	if landlordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LANDLORD", "Landlord ID cannot be empty")
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		City:              city,
		LandlordID:        landlordID,
	}, nil
}

// Update updates the property's basic information
func (p *Property) Update(name, address, city string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}
	if address == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Property address cannot be empty")
	}
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Property address cannot exceed 500 characters")
	}

	p.Name = name
	p.Address = address
	p.City = city
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (p *Property) SetNotes(notes string) {
	p.Notes = notes
	p.Touch()
	p.IncrementVersion()
}
