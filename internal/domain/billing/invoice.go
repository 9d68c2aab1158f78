package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the settlement state of an invoice,
// derived from its cumulative payment history.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"         // No payments recorded
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID" // 0 < total paid < amount due
	InvoiceStatusPaid          InvoiceStatus = "PAID"           // Total paid >= amount due
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// rank orders statuses along the settlement progression.
// Payments are immutable and never removed, so status only ever moves forward.
func (s InvoiceStatus) rank() int {
	switch s {
	case InvoiceStatusPartiallyPaid:
		return 1
	case InvoiceStatusPaid:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether s is at or past other in the settlement progression
func (s InvoiceStatus) AtLeast(other InvoiceStatus) bool {
	return s.rank() >= other.rank()
}

// DeriveStatus computes the settlement status of an invoice from the full set
// of payments recorded against it. The sum is exact decimal arithmetic; an
// exact-balance payment must classify as PAID, which floating point cannot
// guarantee. Overpayment is not capped and simply resolves to PAID.
func DeriveStatus(invoiceAmount decimal.Decimal, payments []Payment) InvoiceStatus {
	totalPaid := decimal.Zero
	for _, p := range payments {
		totalPaid = totalPaid.Add(p.Amount)
	}

	switch {
	case totalPaid.GreaterThanOrEqual(invoiceAmount):
		return InvoiceStatusPaid
	case totalPaid.GreaterThan(decimal.Zero):
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusUnpaid
	}
}

// TotalPaid sums all payment amounts with exact decimal arithmetic
func TotalPaid(payments []Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Invoice represents a billing record for a tenant/unit with a fixed amount
// due. The amount is immutable after creation; only the settlement status is
// mutated, and only by reconciliation against the payment history.
type Invoice struct {
	shared.BaseAggregateRoot
	Number      string          `json:"number"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	UnitID      uuid.UUID       `json:"unit_id"`
	LeaseID     *uuid.UUID      `json:"lease_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Description string          `json:"description"`
	Status      InvoiceStatus   `json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
}

// NewInvoice creates a new invoice in UNPAID state
func NewInvoice(
	number string,
	tenantID uuid.UUID,
	unitID uuid.UUID,
	leaseID *uuid.UUID,
	amount valueobject.Money,
	dueDate *time.Time,
	description string,
) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		TenantID:          tenantID,
		UnitID:            unitID,
		LeaseID:           leaseID,
		Amount:            amount.Amount(),
		DueDate:           dueDate,
		Description:       description,
		Status:            InvoiceStatusUnpaid,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// Reconcile recomputes the settlement status from the full payment history
// and applies it to the invoice. It returns the applied status. Transition
// events are emitted only when the status actually changes, so repeating a
// reconciliation with the same payment set is a no-op. Payments are
// append-only, so a derivation ranking below the current status can only come
// from an incomplete payment list; the status is never moved backward.
func (inv *Invoice) Reconcile(payments []Payment) InvoiceStatus {
	derived := DeriveStatus(inv.Amount, payments)
	if !derived.AtLeast(inv.Status) {
		return inv.Status
	}
	if derived == inv.Status {
		return derived
	}

	previous := inv.Status
	now := time.Now()
	inv.Status = derived
	inv.UpdatedAt = now
	inv.IncrementVersion()

	switch derived {
	case InvoiceStatusPaid:
		inv.PaidAt = &now
		inv.AddDomainEvent(NewInvoicePaidEvent(inv, previous, TotalPaid(payments)))
	case InvoiceStatusPartiallyPaid:
		inv.AddDomainEvent(NewInvoicePartiallyPaidEvent(inv, previous, TotalPaid(payments)))
	}

	return derived
}

// GetAmountMoney returns the amount due as Money
func (inv *Invoice) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.Amount)
}

// IsPaid returns true if the invoice is fully settled
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice is past its due date and not settled
func (inv *Invoice) IsOverdue() bool {
	if inv.Status == InvoiceStatusPaid || inv.DueDate == nil {
		return false
	}
	return time.Now().After(*inv.DueDate)
}

// OutstandingAmount returns the amount still owed given the payment history.
// Overpayment clamps to zero rather than going negative.
func (inv *Invoice) OutstandingAmount(payments []Payment) decimal.Decimal {
	outstanding := inv.Amount.Sub(TotalPaid(payments))
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}
