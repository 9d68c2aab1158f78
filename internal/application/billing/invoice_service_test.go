package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInvoiceServiceFixture() (*InvoiceService, *memInvoiceRepo, *memPaymentRepo) {
	invoiceRepo := newMemInvoiceRepo()
	paymentRepo := &memPaymentRepo{}
	service := NewInvoiceService(invoiceRepo, paymentRepo, nopPublisher{}, zap.NewNop())
	return service, invoiceRepo, paymentRepo
}

func TestInvoiceService_CreateInvoice(t *testing.T) {
	service, _, _ := newInvoiceServiceFixture()

	invoice, err := service.CreateInvoice(context.Background(), CreateInvoiceRequest{
		TenantID:    uuid.New(),
		UnitID:      uuid.New(),
		Amount:      decimal.RequireFromString("1200.00"),
		Description: "September rent",
	})
	require.NoError(t, err)

	assert.Equal(t, billing.InvoiceStatusUnpaid, invoice.Status)
	assert.Equal(t, "INV-20260801-00001", invoice.Number)
	assert.Empty(t, invoice.GetDomainEvents())
}

func TestInvoiceService_CreateInvoice_NegativeAmount(t *testing.T) {
	service, _, _ := newInvoiceServiceFixture()

	_, err := service.CreateInvoice(context.Background(), CreateInvoiceRequest{
		TenantID: uuid.New(),
		UnitID:   uuid.New(),
		Amount:   decimal.RequireFromString("-10.00"),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
}

func TestInvoiceService_GetInvoice_WithPayments(t *testing.T) {
	service, _, paymentRepo := newInvoiceServiceFixture()
	ctx := context.Background()

	invoice, err := service.CreateInvoice(ctx, CreateInvoiceRequest{
		TenantID: uuid.New(),
		UnitID:   uuid.New(),
		Amount:   decimal.RequireFromString("500.00"),
	})
	require.NoError(t, err)

	payment := billing.Payment{InvoiceID: invoice.ID, Amount: decimal.RequireFromString("150.00")}
	require.NoError(t, paymentRepo.Create(ctx, &payment))

	detail, err := service.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)

	assert.Len(t, detail.Payments, 1)
	assert.True(t, detail.TotalPaid.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, detail.Outstanding.Equal(decimal.RequireFromString("350.00")))
}

func TestInvoiceService_GetInvoice_NotFound(t *testing.T) {
	service, _, _ := newInvoiceServiceFixture()

	_, err := service.GetInvoice(context.Background(), uuid.New())
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVOICE_NOT_FOUND", domainErr.Code)
}
