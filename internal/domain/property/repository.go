package property

import (
	"context"

	"github.com/google/uuid"
)

// LandlordFilter represents query filter options for landlords
type LandlordFilter struct {
	Page     int
	PageSize int
	Search   string
}

// LandlordRepository is the persistence contract for landlords
type LandlordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Landlord, error)
	FindByEmail(ctx context.Context, email string) (*Landlord, error)
	FindAll(ctx context.Context, filter LandlordFilter) ([]Landlord, error)
	Count(ctx context.Context, filter LandlordFilter) (int64, error)
	Save(ctx context.Context, landlord *Landlord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PropertyFilter represents query filter options for properties
type PropertyFilter struct {
	Page       int
	PageSize   int
	Search     string
	LandlordID *uuid.UUID
	City       *string
}

// PropertyRepository is the persistence contract for properties
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindAll(ctx context.Context, filter PropertyFilter) ([]Property, error)
	Count(ctx context.Context, filter PropertyFilter) (int64, error)
	Save(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitFilter represents query filter options for units
type UnitFilter struct {
	Page       int
	PageSize   int
	PropertyID *uuid.UUID
	Status     *UnitStatus
}

// UnitRepository is the persistence contract for units
type UnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	FindAll(ctx context.Context, filter UnitFilter) ([]Unit, error)
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]Unit, error)
	Count(ctx context.Context, filter UnitFilter) (int64, error)
	Save(ctx context.Context, unit *Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
}
