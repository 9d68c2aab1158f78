package billing

import (
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants for the billing domain
const (
	EventTypeInvoiceCreated       = "billing.invoice.created"
	EventTypeInvoicePartiallyPaid = "billing.invoice.partially_paid"
	EventTypeInvoicePaid          = "billing.invoice.paid"
	EventTypePaymentRecorded      = "billing.payment.recorded"
)

const aggregateTypeInvoice = "Invoice"

// InvoiceCreatedEvent is emitted when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewInvoiceCreatedEvent creates an InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, inv.ID, aggregateTypeInvoice),
		InvoiceNumber:   inv.Number,
		Amount:          inv.Amount,
	}
}

// InvoicePartiallyPaidEvent is emitted when reconciliation moves an invoice
// into PARTIALLY_PAID
type InvoicePartiallyPaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber  string          `json:"invoice_number"`
	PreviousStatus InvoiceStatus   `json:"previous_status"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	AmountDue      decimal.Decimal `json:"amount_due"`
}

// NewInvoicePartiallyPaidEvent creates an InvoicePartiallyPaidEvent
func NewInvoicePartiallyPaidEvent(inv *Invoice, previous InvoiceStatus, totalPaid decimal.Decimal) *InvoicePartiallyPaidEvent {
	return &InvoicePartiallyPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePartiallyPaid, inv.ID, aggregateTypeInvoice),
		InvoiceNumber:   inv.Number,
		PreviousStatus:  previous,
		TotalPaid:       totalPaid,
		AmountDue:       inv.Amount,
	}
}

// InvoicePaidEvent is emitted when reconciliation settles an invoice in full
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber  string          `json:"invoice_number"`
	PreviousStatus InvoiceStatus   `json:"previous_status"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	AmountDue      decimal.Decimal `json:"amount_due"`
}

// NewInvoicePaidEvent creates an InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice, previous InvoiceStatus, totalPaid decimal.Decimal) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, inv.ID, aggregateTypeInvoice),
		InvoiceNumber:   inv.Number,
		PreviousStatus:  previous,
		TotalPaid:       totalPaid,
		AmountDue:       inv.Amount,
	}
}
