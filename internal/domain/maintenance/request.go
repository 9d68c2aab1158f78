package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
)

// Priority represents the urgency of a maintenance request
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// IsValid checks if the priority is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RequestStatus represents the lifecycle state of a maintenance request
type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "OPEN"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusResolved   RequestStatus = "RESOLVED"
	RequestStatusCancelled  RequestStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusInProgress, RequestStatusResolved, RequestStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusResolved || s == RequestStatusCancelled
}

// Request represents a maintenance issue reported against a unit
type Request struct {
	shared.BaseAggregateRoot
	UnitID      uuid.UUID     `json:"unit_id"`
	TenantID    *uuid.UUID    `json:"tenant_id,omitempty"` // Reporter, when raised by a tenant
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Priority    Priority      `json:"priority"`
	Status      RequestStatus `json:"status"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
}

// NewRequest creates a new open maintenance request
func NewRequest(unitID uuid.UUID, tenantID *uuid.UUID, title, description string, priority Priority) (*Request, error) {
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority is not valid")
	}

	return &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UnitID:            unitID,
		TenantID:          tenantID,
		Title:             title,
		Description:       description,
		Priority:          priority,
		Status:            RequestStatusOpen,
	}, nil
}

// Start moves the request into IN_PROGRESS
func (r *Request) Start() error {
	if r.Status != RequestStatusOpen {
		return shared.NewDomainError("INVALID_TRANSITION", "Only open requests can be started")
	}

	r.Status = RequestStatusInProgress
	r.Touch()
	r.IncrementVersion()

	return nil
}

// Resolve closes the request as fixed
func (r *Request) Resolve() error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", "Request is already closed")
	}

	now := time.Now()
	r.Status = RequestStatusResolved
	r.ResolvedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Cancel closes the request without action
func (r *Request) Cancel() error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", "Request is already closed")
	}

	r.Status = RequestStatusCancelled
	r.Touch()
	r.IncrementVersion()

	return nil
}

// SetPriority reclassifies the request's urgency
func (r *Request) SetPriority(priority Priority) error {
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Priority is not valid")
	}

	r.Priority = priority
	r.Touch()
	r.IncrementVersion()

	return nil
}
