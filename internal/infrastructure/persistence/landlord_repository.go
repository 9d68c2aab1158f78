package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLandlordRepository implements LandlordRepository using GORM
type GormLandlordRepository struct {
	db *gorm.DB
}

// NewGormLandlordRepository creates a new GormLandlordRepository
func NewGormLandlordRepository(db *gorm.DB) *GormLandlordRepository {
	return &GormLandlordRepository{db: db}
}

// FindByID finds a landlord by its ID
func (r *GormLandlordRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a landlord by email
func (r *GormLandlordRepository) FindByEmail(ctx context.Context, email string) (*property.Landlord, error) {
	var model models.LandlordModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds landlords matching the filter
func (r *GormLandlordRepository) FindAll(ctx context.Context, filter property.LandlordFilter) ([]property.Landlord, error) {
	var landlordModels []models.LandlordModel
	query := r.db.WithContext(ctx).Model(&models.LandlordModel{})
	query = r.applyLandlordFilter(query, filter)

	if err := query.Order("full_name ASC").Find(&landlordModels).Error; err != nil {
		return nil, err
	}
	landlords := make([]property.Landlord, len(landlordModels))
	for i, model := range landlordModels {
		landlords[i] = *model.ToDomain()
	}
	return landlords, nil
}

// Count counts landlords matching the filter
func (r *GormLandlordRepository) Count(ctx context.Context, filter property.LandlordFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.LandlordModel{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a landlord
func (r *GormLandlordRepository) Save(ctx context.Context, landlord *property.Landlord) error {
	model := models.LandlordModelFromDomain(landlord)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a landlord
func (r *GormLandlordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LandlordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyLandlordFilter applies filter options to the query
func (r *GormLandlordRepository) applyLandlordFilter(query *gorm.DB, filter property.LandlordFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormLandlordRepository implements LandlordRepository
var _ property.LandlordRepository = (*GormLandlordRepository)(nil)
