package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PropertyService handles property and unit operations
type PropertyService struct {
	propertyRepo property.PropertyRepository
	unitRepo     property.UnitRepository
	landlordRepo property.LandlordRepository
	logger       *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo property.PropertyRepository,
	unitRepo property.UnitRepository,
	landlordRepo property.LandlordRepository,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		landlordRepo: landlordRepo,
		logger:       logger,
	}
}

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name       string
	Address    string
	City       string
	LandlordID uuid.UUID
}

// CreateProperty registers a new property under a landlord
func (s *PropertyService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*property.Property, error) {
	if _, err := s.landlordRepo.FindByID(ctx, req.LandlordID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("LANDLORD_NOT_FOUND", "Landlord not found")
		}
		return nil, fmt.Errorf("failed to get landlord: %w", err)
	}

	prop, err := property.NewProperty(req.Name, req.Address, req.City, req.LandlordID)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}

	s.logger.Info("property created",
		zap.String("property_id", prop.ID.String()),
		zap.String("landlord_id", req.LandlordID.String()),
	)

	return prop, nil
}

// UpdateProperty updates a property's basic information
func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, name, address, city string) (*property.Property, error) {
	prop, err := s.getProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := prop.Update(name, address, city); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Save(ctx, prop); err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}

	return prop, nil
}

// GetProperty returns a property with its units
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*property.Property, []property.Unit, error) {
	prop, err := s.getProperty(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	units, err := s.unitRepo.FindByPropertyID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load units: %w", err)
	}

	return prop, units, nil
}

// ListProperties returns properties matching the filter
func (s *PropertyService) ListProperties(ctx context.Context, filter property.PropertyFilter) ([]property.Property, int64, error) {
	properties, err := s.propertyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}

	total, err := s.propertyRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	return properties, total, nil
}

// DeleteProperty removes a property
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	units, err := s.unitRepo.FindByPropertyID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load units: %w", err)
	}
	if len(units) > 0 {
		return shared.NewDomainError("PROPERTY_HAS_UNITS", "Cannot delete a property that still has units")
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
		}
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

// CreateUnitRequest represents a request to add a unit to a property
type CreateUnitRequest struct {
	PropertyID  uuid.UUID
	Label       string
	Bedrooms    int
	MonthlyRent decimal.Decimal
}

// CreateUnit adds a rentable unit to a property
func (s *PropertyService) CreateUnit(ctx context.Context, req CreateUnitRequest) (*property.Unit, error) {
	if _, err := s.getProperty(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	unit, err := property.NewUnit(req.PropertyID, req.Label, req.Bedrooms, valueobject.NewMoneyUSD(req.MonthlyRent))
	if err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	return unit, nil
}

// UpdateUnit updates a unit's letting details
func (s *PropertyService) UpdateUnit(ctx context.Context, id uuid.UUID, label string, bedrooms int, monthlyRent decimal.Decimal) (*property.Unit, error) {
	unit, err := s.GetUnit(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := unit.Update(label, bedrooms, valueobject.NewMoneyUSD(monthlyRent)); err != nil {
		return nil, err
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to save unit: %w", err)
	}

	return unit, nil
}

// GetUnit returns a unit by ID
func (s *PropertyService) GetUnit(ctx context.Context, id uuid.UUID) (*property.Unit, error) {
	unit, err := s.unitRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return unit, nil
}

// ListUnits returns units matching the filter
func (s *PropertyService) ListUnits(ctx context.Context, filter property.UnitFilter) ([]property.Unit, int64, error) {
	units, err := s.unitRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list units: %w", err)
	}

	total, err := s.unitRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count units: %w", err)
	}

	return units, total, nil
}

func (s *PropertyService) getProperty(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	prop, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return prop, nil
}
