package maintenance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/maintenance"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MaintenanceService handles maintenance request operations
type MaintenanceService struct {
	requestRepo maintenance.RequestRepository
	unitRepo    property.UnitRepository
	logger      *zap.Logger
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(
	requestRepo maintenance.RequestRepository,
	unitRepo property.UnitRepository,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		requestRepo: requestRepo,
		unitRepo:    unitRepo,
		logger:      logger,
	}
}

// CreateRequestRequest represents a request to report a maintenance issue
type CreateRequestRequest struct {
	UnitID      uuid.UUID
	TenantID    *uuid.UUID
	Title       string
	Description string
	Priority    maintenance.Priority
}

// CreateRequest opens a new maintenance request against a unit
func (s *MaintenanceService) CreateRequest(ctx context.Context, req CreateRequestRequest) (*maintenance.Request, error) {
	if _, err := s.unitRepo.FindByID(ctx, req.UnitID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNIT_NOT_FOUND", "Unit not found")
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}

	request, err := maintenance.NewRequest(req.UnitID, req.TenantID, req.Title, req.Description, req.Priority)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save maintenance request: %w", err)
	}

	s.logger.Info("maintenance request created",
		zap.String("request_id", request.ID.String()),
		zap.String("unit_id", req.UnitID.String()),
		zap.String("priority", string(req.Priority)),
	)

	return request, nil
}

// StartRequest moves a request into IN_PROGRESS
func (s *MaintenanceService) StartRequest(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	return s.transition(ctx, id, (*maintenance.Request).Start)
}

// ResolveRequest closes a request as fixed
func (s *MaintenanceService) ResolveRequest(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	return s.transition(ctx, id, (*maintenance.Request).Resolve)
}

// CancelRequest closes a request without action
func (s *MaintenanceService) CancelRequest(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	return s.transition(ctx, id, (*maintenance.Request).Cancel)
}

// GetRequest returns a maintenance request by ID
func (s *MaintenanceService) GetRequest(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("REQUEST_NOT_FOUND", "Maintenance request not found")
		}
		return nil, fmt.Errorf("failed to get maintenance request: %w", err)
	}
	return request, nil
}

// ListRequests returns maintenance requests matching the filter
func (s *MaintenanceService) ListRequests(ctx context.Context, filter maintenance.RequestFilter) ([]maintenance.Request, int64, error) {
	requests, err := s.requestRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list maintenance requests: %w", err)
	}

	total, err := s.requestRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count maintenance requests: %w", err)
	}

	return requests, total, nil
}

func (s *MaintenanceService) transition(ctx context.Context, id uuid.UUID, fn func(*maintenance.Request) error) (*maintenance.Request, error) {
	request, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(request); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save maintenance request: %w", err)
	}

	return request, nil
}
