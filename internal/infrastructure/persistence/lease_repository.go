package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLeaseRepository implements LeaseRepository using GORM
type GormLeaseRepository struct {
	db *gorm.DB
}

// NewGormLeaseRepository creates a new GormLeaseRepository
func NewGormLeaseRepository(db *gorm.DB) *GormLeaseRepository {
	return &GormLeaseRepository{db: db}
}

// FindByID finds a lease by its ID
func (r *GormLeaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Lease, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds leases matching the filter
func (r *GormLeaseRepository) FindAll(ctx context.Context, filter tenancy.LeaseFilter) ([]tenancy.Lease, error) {
	var leaseModels []models.LeaseModel
	query := r.db.WithContext(ctx).Model(&models.LeaseModel{})
	query = r.applyLeaseFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Order("start_date DESC").Find(&leaseModels).Error; err != nil {
		return nil, err
	}
	leases := make([]tenancy.Lease, len(leaseModels))
	for i, model := range leaseModels {
		leases[i] = *model.ToDomain()
	}
	return leases, nil
}

// FindActiveByUnitID finds the active lease on a unit, if any.
// A unit can carry at most one active lease at a time.
func (r *GormLeaseRepository) FindActiveByUnitID(ctx context.Context, unitID uuid.UUID) (*tenancy.Lease, error) {
	var model models.LeaseModel
	if err := r.db.WithContext(ctx).
		Where("unit_id = ? AND status = ?", unitID, tenancy.LeaseStatusActive).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Count counts leases matching the filter
func (r *GormLeaseRepository) Count(ctx context.Context, filter tenancy.LeaseFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LeaseModel{})
	query = r.applyLeaseFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a lease
func (r *GormLeaseRepository) Save(ctx context.Context, lease *tenancy.Lease) error {
	model := models.LeaseModelFromDomain(lease)
	return r.db.WithContext(ctx).Save(model).Error
}

// applyLeaseFilterWithoutPagination applies filter options without pagination
func (r *GormLeaseRepository) applyLeaseFilterWithoutPagination(query *gorm.DB, filter tenancy.LeaseFilter) *gorm.DB {
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.UnitID != nil {
		query = query.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// Ensure GormLeaseRepository implements LeaseRepository
var _ tenancy.LeaseRepository = (*GormLeaseRepository)(nil)
