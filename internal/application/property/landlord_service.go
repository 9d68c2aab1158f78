package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LandlordService handles landlord CRUD operations
type LandlordService struct {
	landlordRepo property.LandlordRepository
	logger       *zap.Logger
}

// NewLandlordService creates a new LandlordService
func NewLandlordService(landlordRepo property.LandlordRepository, logger *zap.Logger) *LandlordService {
	return &LandlordService{landlordRepo: landlordRepo, logger: logger}
}

// CreateLandlordRequest represents a request to create a landlord
type CreateLandlordRequest struct {
	FullName    string
	Email       string
	Phone       string
	BankName    string
	BankAccount string
	Notes       string
}

// CreateLandlord registers a new landlord
func (s *LandlordService) CreateLandlord(ctx context.Context, req CreateLandlordRequest) (*property.Landlord, error) {
	existing, err := s.landlordRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check landlord email: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A landlord with this email already exists")
	}

	landlord, err := property.NewLandlord(req.FullName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	if req.BankName != "" || req.BankAccount != "" {
		if err := landlord.SetBankDetails(req.BankName, req.BankAccount); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		landlord.SetNotes(req.Notes)
	}

	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		return nil, fmt.Errorf("failed to save landlord: %w", err)
	}

	s.logger.Info("landlord created", zap.String("landlord_id", landlord.ID.String()))

	return landlord, nil
}

// UpdateLandlordRequest represents a request to update a landlord
type UpdateLandlordRequest struct {
	FullName    string
	Email       string
	Phone       string
	BankName    string
	BankAccount string
}

// UpdateLandlord updates an existing landlord
func (s *LandlordService) UpdateLandlord(ctx context.Context, id uuid.UUID, req UpdateLandlordRequest) (*property.Landlord, error) {
	landlord, err := s.getLandlord(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := landlord.Update(req.FullName, req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := landlord.SetBankDetails(req.BankName, req.BankAccount); err != nil {
		return nil, err
	}

	if err := s.landlordRepo.Save(ctx, landlord); err != nil {
		return nil, fmt.Errorf("failed to save landlord: %w", err)
	}

	return landlord, nil
}

// GetLandlord returns a landlord by ID
func (s *LandlordService) GetLandlord(ctx context.Context, id uuid.UUID) (*property.Landlord, error) {
	return s.getLandlord(ctx, id)
}

// ListLandlords returns landlords matching the filter
func (s *LandlordService) ListLandlords(ctx context.Context, filter property.LandlordFilter) ([]property.Landlord, int64, error) {
	landlords, err := s.landlordRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list landlords: %w", err)
	}

	total, err := s.landlordRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count landlords: %w", err)
	}

	return landlords, total, nil
}

// DeleteLandlord removes a landlord
func (s *LandlordService) DeleteLandlord(ctx context.Context, id uuid.UUID) error {
	if err := s.landlordRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("LANDLORD_NOT_FOUND", "Landlord not found")
		}
		return fmt.Errorf("failed to delete landlord: %w", err)
	}
	return nil
}

func (s *LandlordService) getLandlord(ctx context.Context, id uuid.UUID) (*property.Landlord, error) {
	landlord, err := s.landlordRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("LANDLORD_NOT_FOUND", "Landlord not found")
		}
		return nil, fmt.Errorf("failed to get landlord: %w", err)
	}
	return landlord, nil
}
