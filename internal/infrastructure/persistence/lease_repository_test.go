package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/propman/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newLeaseTestDB opens an isolated in-memory SQLite database. The lease
// queries use no Postgres-specific SQL, so they can run against a real
// database here instead of statement mocks.
func newLeaseTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LeaseModel{}))
	return db
}

func newTestLease(t *testing.T, unitID uuid.UUID) *tenancy.Lease {
	t.Helper()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rent, err := valueobject.NewMoneyUSDFromString("1200.00")
	require.NoError(t, err)
	deposit, err := valueobject.NewMoneyUSDFromString("2400.00")
	require.NoError(t, err)

	lease, err := tenancy.NewLease(uuid.New(), unitID, start, start.AddDate(1, 0, 0), rent, deposit)
	require.NoError(t, err)
	return lease
}

func TestGormLeaseRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormLeaseRepository(newLeaseTestDB(t))
	ctx := context.Background()

	lease := newTestLease(t, uuid.New())
	require.NoError(t, repo.Save(ctx, lease))

	found, err := repo.FindByID(ctx, lease.ID)
	require.NoError(t, err)
	assert.Equal(t, lease.TenantID, found.TenantID)
	assert.Equal(t, lease.UnitID, found.UnitID)
	assert.Equal(t, tenancy.LeaseStatusActive, found.Status)
	assert.True(t, found.RentAmount.Equal(lease.RentAmount))
	assert.Equal(t, 1, found.Version)
}

func TestGormLeaseRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormLeaseRepository(newLeaseTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormLeaseRepository_FindActiveByUnitID(t *testing.T) {
	repo := NewGormLeaseRepository(newLeaseTestDB(t))
	ctx := context.Background()
	unitID := uuid.New()

	lease := newTestLease(t, unitID)
	require.NoError(t, repo.Save(ctx, lease))

	active, err := repo.FindActiveByUnitID(ctx, unitID)
	require.NoError(t, err)
	assert.Equal(t, lease.ID, active.ID)

	// Ending the lease frees the unit
	require.NoError(t, lease.End())
	require.NoError(t, repo.Save(ctx, lease))

	_, err = repo.FindActiveByUnitID(ctx, unitID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormLeaseRepository_FindAll_StatusFilter(t *testing.T) {
	repo := NewGormLeaseRepository(newLeaseTestDB(t))
	ctx := context.Background()

	active := newTestLease(t, uuid.New())
	require.NoError(t, repo.Save(ctx, active))

	ended := newTestLease(t, uuid.New())
	require.NoError(t, ended.End())
	require.NoError(t, repo.Save(ctx, ended))

	status := tenancy.LeaseStatusActive
	filter := tenancy.LeaseFilter{Status: &status}

	leases, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, leases, 1)
	assert.Equal(t, active.ID, leases[0].ID)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	total, err := repo.Count(ctx, tenancy.LeaseFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestGormLeaseRepository_FindAll_TenantFilter(t *testing.T) {
	repo := NewGormLeaseRepository(newLeaseTestDB(t))
	ctx := context.Background()

	first := newTestLease(t, uuid.New())
	require.NoError(t, repo.Save(ctx, first))
	second := newTestLease(t, uuid.New())
	require.NoError(t, repo.Save(ctx, second))

	leases, err := repo.FindAll(ctx, tenancy.LeaseFilter{TenantID: &first.TenantID})
	require.NoError(t, err)
	require.Len(t, leases, 1)
	assert.Equal(t, first.ID, leases[0].ID)
}
