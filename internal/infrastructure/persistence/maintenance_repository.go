package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/maintenance"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMaintenanceRequestRepository implements RequestRepository using GORM
type GormMaintenanceRequestRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRequestRepository creates a new GormMaintenanceRequestRepository
func NewGormMaintenanceRequestRepository(db *gorm.DB) *GormMaintenanceRequestRepository {
	return &GormMaintenanceRequestRepository{db: db}
}

// FindByID finds a maintenance request by its ID
func (r *GormMaintenanceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Request, error) {
	var model models.MaintenanceRequestModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds maintenance requests matching the filter
func (r *GormMaintenanceRequestRepository) FindAll(ctx context.Context, filter maintenance.RequestFilter) ([]maintenance.Request, error) {
	var requestModels []models.MaintenanceRequestModel
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{})
	query = r.applyRequestFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("created_at DESC").Find(&requestModels).Error; err != nil {
		return nil, err
	}
	requests := make([]maintenance.Request, len(requestModels))
	for i, model := range requestModels {
		requests[i] = *model.ToDomain()
	}
	return requests, nil
}

// Count counts maintenance requests matching the filter
func (r *GormMaintenanceRequestRepository) Count(ctx context.Context, filter maintenance.RequestFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.MaintenanceRequestModel{})
	query = r.applyRequestFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a maintenance request
func (r *GormMaintenanceRequestRepository) Save(ctx context.Context, request *maintenance.Request) error {
	model := models.MaintenanceRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Save(model).Error
}

// applyRequestFilterWithoutPagination applies filter options without pagination
func (r *GormMaintenanceRequestRepository) applyRequestFilterWithoutPagination(query *gorm.DB, filter maintenance.RequestFilter) *gorm.DB {
	if filter.UnitID != nil {
		query = query.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	return query
}

// Ensure GormMaintenanceRequestRepository implements RequestRepository
var _ maintenance.RequestRepository = (*GormMaintenanceRequestRepository)(nil)
