package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxReconcileAttempts bounds the optimistic-lock retry loop. Contention on a
// single invoice is rare enough that losing the race this many times in a row
// means something else is wrong.
const maxReconcileAttempts = 5

// idempotencyKeyTTL is how long a claimed payment submission key stays claimed
const idempotencyKeyTTL = 24 * time.Hour

// PaymentService handles recording payments and settling invoices.
// Recording a payment and updating the invoice status are two separate writes;
// the status write is retried under optimistic locking, and the payment itself
// is never rolled back to repair a status mismatch.
type PaymentService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	idempotency shared.IdempotencyStore
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	idempotency shared.IdempotencyStore,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		idempotency: idempotency,
		publisher:   publisher,
		logger:      logger,
	}
}

// RecordPaymentRequest represents a request to record a payment against an invoice
type RecordPaymentRequest struct {
	InvoiceID      uuid.UUID
	Amount         decimal.Decimal
	Method         billing.PaymentMethod
	Reference      string
	Notes          string
	IdempotencyKey string // Optional client-supplied duplicate-submission guard
}

// RecordPaymentResult represents the outcome of recording a payment
type RecordPaymentResult struct {
	Payment       *billing.Payment      `json:"payment"`
	InvoiceStatus billing.InvoiceStatus `json:"invoice_status"`
	TotalPaid     decimal.Decimal       `json:"total_paid"`
}

// RecordPayment records a payment against an invoice and settles the invoice
// status from the full payment history. Validation and the invoice lookup
// happen before anything is written; a rejected request leaves no trace.
func (s *PaymentService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !req.Method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	claimedKey := ""
	if req.IdempotencyKey != "" && s.idempotency != nil {
		key := paymentIdempotencyKey(req.InvoiceID, req.IdempotencyKey)
		claimed, err := s.idempotency.MarkProcessed(ctx, key, idempotencyKeyTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to claim idempotency key: %w", err)
		}
		if !claimed {
			return nil, shared.NewDomainError("DUPLICATE_PAYMENT", "This payment has already been submitted")
		}
		claimedKey = key
	}

	payment, err := billing.NewPayment(invoice.ID, valueobject.NewMoneyUSD(req.Amount), req.Method, req.Reference, req.Notes)
	if err != nil {
		s.releaseClaim(ctx, claimedKey)
		return nil, err
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		// No payment was written, so the claim must not block a retry
		s.releaseClaim(ctx, claimedKey)
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("method", payment.Method.String()),
	)

	status, totalPaid, err := s.reconcile(ctx, invoice.ID)
	if err != nil {
		// The payment is already durable. A failed status update leaves the
		// invoice stale until the next payment or an explicit reconcile run,
		// never a lost payment.
		s.logger.Error("invoice settlement update failed, status may be stale",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
		payments, perr := s.paymentRepo.FindByInvoiceID(ctx, invoice.ID)
		if perr != nil {
			payments = []billing.Payment{*payment}
		}
		return &RecordPaymentResult{
			Payment:       payment,
			InvoiceStatus: billing.DeriveStatus(invoice.Amount, payments),
			TotalPaid:     billing.TotalPaid(payments),
		}, nil
	}

	return &RecordPaymentResult{
		Payment:       payment,
		InvoiceStatus: status,
		TotalPaid:     totalPaid,
	}, nil
}

// ReconcileInvoice recomputes an invoice's settlement status from its full
// payment history. It is idempotent and serves as the repair path for an
// invoice left stale by a crash between the payment write and the status write.
func (s *PaymentService) ReconcileInvoice(ctx context.Context, invoiceID uuid.UUID) (*billing.Invoice, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, invoiceID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if _, _, err := s.reconcile(ctx, invoiceID); err != nil {
		return nil, err
	}

	return s.invoiceRepo.FindByID(ctx, invoiceID)
}

// reconcile runs the read-derive-write loop under optimistic locking.
// Each attempt re-reads both the invoice and the payment history, so a lost
// race simply recomputes against the newer state.
func (s *PaymentService) reconcile(ctx context.Context, invoiceID uuid.UUID) (billing.InvoiceStatus, decimal.Decimal, error) {
	var lastErr error

	for attempt := 1; attempt <= maxReconcileAttempts; attempt++ {
		invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
		if err != nil {
			return "", decimal.Zero, fmt.Errorf("failed to get invoice: %w", err)
		}

		payments, err := s.paymentRepo.FindByInvoiceID(ctx, invoiceID)
		if err != nil {
			return "", decimal.Zero, fmt.Errorf("failed to load payments: %w", err)
		}

		status := invoice.Reconcile(payments)
		if len(invoice.GetDomainEvents()) == 0 {
			// Status already current, nothing to write
			return status, billing.TotalPaid(payments), nil
		}

		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				lastErr = err
				s.logger.Debug("lost settlement race, retrying",
					zap.String("invoice_id", invoiceID.String()),
					zap.Int("attempt", attempt),
				)
				continue
			}
			return "", decimal.Zero, fmt.Errorf("failed to save invoice: %w", err)
		}

		s.publishEvents(ctx, invoice)
		return status, billing.TotalPaid(payments), nil
	}

	return "", decimal.Zero, fmt.Errorf("gave up settling invoice %s after %d attempts: %w", invoiceID, maxReconcileAttempts, lastErr)
}

// GetPayment returns a single payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment not found")
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payment, nil
}

// ListPayments returns payments matching the filter, most recent first
func (s *PaymentService) ListPayments(ctx context.Context, filter billing.PaymentFilter) ([]billing.Payment, int64, error) {
	payments, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return payments, total, nil
}

// ListInvoicePayments returns the full payment history of one invoice, oldest first
func (s *PaymentService) ListInvoicePayments(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, invoiceID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	payments, err := s.paymentRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) publishEvents(ctx context.Context, invoice *billing.Invoice) {
	events := invoice.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish invoice events",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err),
		)
	}
	invoice.ClearDomainEvents()
}

// releaseClaim frees an idempotency key claimed for a submission whose payment
// was never written. A failed release only means the key stays claimed until
// its TTL runs out, so it is logged and not surfaced.
func (s *PaymentService) releaseClaim(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		s.logger.Warn("failed to release idempotency key",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func paymentIdempotencyKey(invoiceID uuid.UUID, key string) string {
	return fmt.Sprintf("payment:%s:%s", invoiceID, key)
}
