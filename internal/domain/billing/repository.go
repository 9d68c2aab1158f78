package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvoiceFilter represents query filter options for invoices
type InvoiceFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string

	TenantID *uuid.UUID
	UnitID   *uuid.UUID
	LeaseID  *uuid.UUID
	Status   *InvoiceStatus
	DueFrom  *time.Time
	DueTo    *time.Time
	Overdue  *bool
}

// InvoiceRepository is the persistence contract for invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	// SaveWithLock persists the invoice only if no concurrent writer has
	// bumped its version since it was loaded. Returns
	// shared.ErrConcurrencyConflict when the optimistic lock is lost.
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	GenerateInvoiceNumber(ctx context.Context) (string, error)
}

// PaymentFilter represents query filter options for payments
type PaymentFilter struct {
	Page     int
	PageSize int

	InvoiceID *uuid.UUID
	Method    *PaymentMethod
	PaidFrom  *time.Time
	PaidTo    *time.Time
}

// PaymentRepository is the persistence contract for payments.
// Payments are append-only: there is no update or delete.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	// FindByInvoiceID returns every payment recorded against the invoice,
	// oldest first. Settlement derivation always works from this full list.
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
	// FindAll returns payments ordered by payment date, most recent first
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)
	Count(ctx context.Context, filter PaymentFilter) (int64, error)
	Create(ctx context.Context, payment *Payment) error
}
