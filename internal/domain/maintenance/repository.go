package maintenance

import (
	"context"

	"github.com/google/uuid"
)

// RequestFilter represents query filter options for maintenance requests
type RequestFilter struct {
	Page     int
	PageSize int
	UnitID   *uuid.UUID
	TenantID *uuid.UUID
	Status   *RequestStatus
	Priority *Priority
}

// RequestRepository is the persistence contract for maintenance requests
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindAll(ctx context.Context, filter RequestFilter) ([]Request, error)
	Count(ctx context.Context, filter RequestFilter) (int64, error)
	Save(ctx context.Context, request *Request) error
}
