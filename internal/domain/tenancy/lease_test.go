package tenancy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLease(t *testing.T) *Lease {
	rent, err := valueobject.NewMoneyUSDFromString("1200.00")
	require.NoError(t, err)
	deposit, err := valueobject.NewMoneyUSDFromString("2400.00")
	require.NoError(t, err)

	start := time.Now()
	end := start.AddDate(1, 0, 0)

	lease, err := NewLease(uuid.New(), uuid.New(), start, end, rent, deposit)
	require.NoError(t, err)
	return lease
}

func TestNewLease(t *testing.T) {
	lease := createTestLease(t)

	assert.Equal(t, LeaseStatusActive, lease.Status)
	assert.True(t, lease.IsActive())
	assert.Nil(t, lease.EndedAt)
}

func TestNewLease_Validation(t *testing.T) {
	rent, err := valueobject.NewMoneyUSDFromString("1200.00")
	require.NoError(t, err)
	zero := valueobject.ZeroUSD()

	start := time.Now()
	end := start.AddDate(1, 0, 0)

	tests := []struct {
		name      string
		tenantID  uuid.UUID
		unitID    uuid.UUID
		startDate time.Time
		endDate   time.Time
		rent      valueobject.Money
	}{
		{"nil tenant", uuid.Nil, uuid.New(), start, end, rent},
		{"nil unit", uuid.New(), uuid.Nil, start, end, rent},
		{"end before start", uuid.New(), uuid.New(), end, start, rent},
		{"end equals start", uuid.New(), uuid.New(), start, start, rent},
		{"zero rent", uuid.New(), uuid.New(), start, end, zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLease(tt.tenantID, tt.unitID, tt.startDate, tt.endDate, tt.rent, zero)
			assert.Error(t, err)
		})
	}
}

func TestLease_End(t *testing.T) {
	lease := createTestLease(t)

	require.NoError(t, lease.End())
	assert.Equal(t, LeaseStatusEnded, lease.Status)
	assert.False(t, lease.IsActive())
	require.NotNil(t, lease.EndedAt)

	// Terminal states reject further transitions
	assert.Error(t, lease.End())
	assert.Error(t, lease.Terminate())
}

func TestLease_Terminate(t *testing.T) {
	lease := createTestLease(t)

	require.NoError(t, lease.Terminate())
	assert.Equal(t, LeaseStatusTerminated, lease.Status)
	require.NotNil(t, lease.EndedAt)

	assert.Error(t, lease.End())
}
