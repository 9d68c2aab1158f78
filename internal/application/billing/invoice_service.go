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

// InvoiceService handles invoice lifecycle operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	TenantID    uuid.UUID
	UnitID      uuid.UUID
	LeaseID     *uuid.UUID
	Amount      decimal.Decimal
	DueDate     *time.Time
	Description string
}

// InvoiceDetail is an invoice together with its payment history
type InvoiceDetail struct {
	Invoice     *billing.Invoice  `json:"invoice"`
	Payments    []billing.Payment `json:"payments"`
	TotalPaid   decimal.Decimal   `json:"total_paid"`
	Outstanding decimal.Decimal   `json:"outstanding"`
}

// CreateInvoice creates a new invoice in UNPAID state with a generated number
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*billing.Invoice, error) {
	number, err := s.invoiceRepo.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	invoice, err := billing.NewInvoice(
		number,
		req.TenantID,
		req.UnitID,
		req.LeaseID,
		valueobject.NewMoneyUSD(req.Amount),
		req.DueDate,
		req.Description,
	)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.String("amount", invoice.Amount.String()),
	)

	s.publishEvents(ctx, invoice)

	return invoice, nil
}

// GetInvoice returns an invoice with its full payment history
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	payments, err := s.paymentRepo.FindByInvoiceID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	return &InvoiceDetail{
		Invoice:     invoice,
		Payments:    payments,
		TotalPaid:   billing.TotalPaid(payments),
		Outstanding: invoice.OutstandingAmount(payments),
	}, nil
}

// ListInvoices returns invoices matching the filter
func (s *InvoiceService) ListInvoices(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, int64, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	return invoices, total, nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, invoice *billing.Invoice) {
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
