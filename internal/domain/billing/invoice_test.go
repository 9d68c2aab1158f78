package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestInvoice(t *testing.T, amount string) *Invoice {
	money, err := valueobject.NewMoneyUSDFromString(amount)
	require.NoError(t, err)

	inv, err := NewInvoice(
		"INV-20260801-00001",
		uuid.New(),
		uuid.New(),
		nil,
		money,
		nil,
		"Monthly rent",
	)
	require.NoError(t, err)
	return inv
}

func testPayment(t *testing.T, invoiceID uuid.UUID, amount string) Payment {
	money, err := valueobject.NewMoneyUSDFromString(amount)
	require.NoError(t, err)
	p, err := NewPayment(invoiceID, money, PaymentMethodBankTransfer, "", "")
	require.NoError(t, err)
	return *p
}

// ============================================
// InvoiceStatus Tests
// ============================================

func TestInvoiceStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  InvoiceStatus
		isValid bool
	}{
		{InvoiceStatusUnpaid, true},
		{InvoiceStatusPartiallyPaid, true},
		{InvoiceStatusPaid, true},
		{InvoiceStatus("INVALID"), false},
		{InvoiceStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestInvoiceStatus_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		status   InvoiceStatus
		other    InvoiceStatus
		expected bool
	}{
		{"unpaid vs unpaid", InvoiceStatusUnpaid, InvoiceStatusUnpaid, true},
		{"unpaid vs partial", InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, false},
		{"partial vs unpaid", InvoiceStatusPartiallyPaid, InvoiceStatusUnpaid, true},
		{"partial vs paid", InvoiceStatusPartiallyPaid, InvoiceStatusPaid, false},
		{"paid vs partial", InvoiceStatusPaid, InvoiceStatusPartiallyPaid, true},
		{"paid vs paid", InvoiceStatusPaid, InvoiceStatusPaid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.AtLeast(tt.other))
		})
	}
}

// ============================================
// DeriveStatus Tests
// ============================================

func TestDeriveStatus(t *testing.T) {
	invoiceID := uuid.New()

	tests := []struct {
		name     string
		amount   string
		payments []string
		expected InvoiceStatus
	}{
		{"no payments", "500.00", nil, InvoiceStatusUnpaid},
		{"single partial payment", "500.00", []string{"200.00"}, InvoiceStatusPartiallyPaid},
		{"single exact payment", "500.00", []string{"500.00"}, InvoiceStatusPaid},
		{"single overpayment", "500.00", []string{"700.00"}, InvoiceStatusPaid},
		{"two payments summing below", "1000.00", []string{"400.00", "500.00"}, InvoiceStatusPartiallyPaid},
		{"two payments summing exactly", "1000.00", []string{"400.00", "600.00"}, InvoiceStatusPaid},
		{"many small payments crossing threshold", "100.00", []string{"33.33", "33.33", "33.34"}, InvoiceStatusPaid},
		{"fractional cents stay exact", "0.30", []string{"0.10", "0.10", "0.10"}, InvoiceStatusPaid},
		{"one cent short", "100.00", []string{"99.99"}, InvoiceStatusPartiallyPaid},
		{"zero amount invoice with no payments", "0.00", nil, InvoiceStatusPaid},
		{"zero amount invoice with payment", "0.00", []string{"10.00"}, InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)

			payments := make([]Payment, 0, len(tt.payments))
			for _, p := range tt.payments {
				payments = append(payments, testPayment(t, invoiceID, p))
			}

			assert.Equal(t, tt.expected, DeriveStatus(amount, payments))
		})
	}
}

func TestDeriveStatus_OrderIndependent(t *testing.T) {
	invoiceID := uuid.New()
	amount := decimal.NewFromInt(1000)

	a := testPayment(t, invoiceID, "400.00")
	b := testPayment(t, invoiceID, "600.00")

	assert.Equal(t, DeriveStatus(amount, []Payment{a, b}), DeriveStatus(amount, []Payment{b, a}))
}

func TestTotalPaid(t *testing.T) {
	invoiceID := uuid.New()
	payments := []Payment{
		testPayment(t, invoiceID, "100.50"),
		testPayment(t, invoiceID, "200.25"),
	}

	assert.True(t, TotalPaid(payments).Equal(decimal.RequireFromString("300.75")))
	assert.True(t, TotalPaid(nil).IsZero())
}

// ============================================
// Invoice Creation Tests
// ============================================

func TestNewInvoice(t *testing.T) {
	inv := createTestInvoice(t, "500.00")

	assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	assert.Equal(t, "INV-20260801-00001", inv.Number)
	assert.True(t, inv.Amount.Equal(decimal.RequireFromString("500.00")))
	assert.Nil(t, inv.PaidAt)
	assert.Equal(t, 1, inv.Version)

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())
}

func TestNewInvoice_Validation(t *testing.T) {
	money, err := valueobject.NewMoneyUSDFromString("100.00")
	require.NoError(t, err)
	negative, err := valueobject.NewMoneyUSDFromString("-1.00")
	require.NoError(t, err)

	tests := []struct {
		name     string
		number   string
		tenantID uuid.UUID
		unitID   uuid.UUID
		amount   valueobject.Money
	}{
		{"empty number", "", uuid.New(), uuid.New(), money},
		{"nil tenant", "INV-1", uuid.Nil, uuid.New(), money},
		{"nil unit", "INV-1", uuid.New(), uuid.Nil, money},
		{"negative amount", "INV-1", uuid.New(), uuid.New(), negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(tt.number, tt.tenantID, tt.unitID, nil, tt.amount, nil, "")
			assert.Error(t, err)
		})
	}
}

// ============================================
// Reconcile Tests
// ============================================

func TestInvoice_Reconcile_PartialThenPaid(t *testing.T) {
	inv := createTestInvoice(t, "500.00")
	inv.ClearDomainEvents()

	first := testPayment(t, inv.ID, "200.00")
	status := inv.Reconcile([]Payment{first})

	assert.Equal(t, InvoiceStatusPartiallyPaid, status)
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
	assert.Nil(t, inv.PaidAt)
	assert.Equal(t, 2, inv.Version)

	events := inv.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeInvoicePartiallyPaid, events[0].EventType())
	inv.ClearDomainEvents()

	second := testPayment(t, inv.ID, "300.00")
	status = inv.Reconcile([]Payment{first, second})

	assert.Equal(t, InvoiceStatusPaid, status)
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, 3, inv.Version)

	events = inv.GetDomainEvents()
	require.Len(t, events, 1)
	paid, ok := events[0].(*InvoicePaidEvent)
	require.True(t, ok)
	assert.Equal(t, InvoiceStatusPartiallyPaid, paid.PreviousStatus)
	assert.True(t, paid.TotalPaid.Equal(decimal.RequireFromString("500.00")))
}

func TestInvoice_Reconcile_Idempotent(t *testing.T) {
	inv := createTestInvoice(t, "500.00")
	inv.ClearDomainEvents()

	payments := []Payment{testPayment(t, inv.ID, "500.00")}

	inv.Reconcile(payments)
	require.Equal(t, InvoiceStatusPaid, inv.Status)
	versionAfterFirst := inv.Version
	inv.ClearDomainEvents()

	// Re-running with the same history must not change anything or emit events
	status := inv.Reconcile(payments)

	assert.Equal(t, InvoiceStatusPaid, status)
	assert.Equal(t, versionAfterFirst, inv.Version)
	assert.Empty(t, inv.GetDomainEvents())
}

func TestInvoice_Reconcile_NeverMovesBackward(t *testing.T) {
	inv := createTestInvoice(t, "500.00")
	inv.ClearDomainEvents()

	inv.Reconcile([]Payment{testPayment(t, inv.ID, "200.00")})
	require.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
	versionAfterFirst := inv.Version
	inv.ClearDomainEvents()

	// An incomplete payment list derives a lower-ranked status; the invoice
	// keeps its current one
	status := inv.Reconcile(nil)

	assert.Equal(t, InvoiceStatusPartiallyPaid, status)
	assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
	assert.Equal(t, versionAfterFirst, inv.Version)
	assert.Empty(t, inv.GetDomainEvents())
}

func TestInvoice_Reconcile_Overpayment(t *testing.T) {
	inv := createTestInvoice(t, "500.00")

	status := inv.Reconcile([]Payment{testPayment(t, inv.ID, "700.00")})

	assert.Equal(t, InvoiceStatusPaid, status)
	assert.True(t, inv.OutstandingAmount([]Payment{testPayment(t, inv.ID, "700.00")}).IsZero())
}

func TestInvoice_IsOverdue(t *testing.T) {
	inv := createTestInvoice(t, "500.00")
	assert.False(t, inv.IsOverdue())

	past := time.Now().AddDate(0, 0, -1)
	inv.DueDate = &past
	assert.True(t, inv.IsOverdue())

	inv.Reconcile([]Payment{testPayment(t, inv.ID, "500.00")})
	assert.False(t, inv.IsOverdue())
}

func TestInvoice_OutstandingAmount(t *testing.T) {
	inv := createTestInvoice(t, "500.00")

	assert.True(t, inv.OutstandingAmount(nil).Equal(decimal.RequireFromString("500.00")))

	partial := []Payment{testPayment(t, inv.ID, "200.00")}
	assert.True(t, inv.OutstandingAmount(partial).Equal(decimal.RequireFromString("300.00")))
}
