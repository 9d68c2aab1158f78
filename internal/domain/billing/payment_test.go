package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// PaymentMethod Tests
// ============================================

func TestPaymentMethod_IsValid(t *testing.T) {
	tests := []struct {
		method  PaymentMethod
		isValid bool
	}{
		{PaymentMethodCash, true},
		{PaymentMethodBankTransfer, true},
		{PaymentMethodCard, true},
		{PaymentMethodMobileMoney, true},
		{PaymentMethodCheque, true},
		{PaymentMethod("BITCOIN"), false},
		{PaymentMethod(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.method.IsValid())
		})
	}
}

// ============================================
// Payment Creation Tests
// ============================================

func TestNewPayment(t *testing.T) {
	invoiceID := uuid.New()
	amount, err := valueobject.NewMoneyUSDFromString("250.00")
	require.NoError(t, err)

	before := time.Now()
	p, err := NewPayment(invoiceID, amount, PaymentMethodMobileMoney, "MPESA-XY123", "August rent")
	require.NoError(t, err)

	assert.Equal(t, invoiceID, p.InvoiceID)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("250.00")))
	assert.Equal(t, PaymentMethodMobileMoney, p.Method)
	assert.Equal(t, "MPESA-XY123", p.Reference)
	assert.Equal(t, "August rent", p.Notes)
	assert.NotEqual(t, uuid.Nil, p.ID)

	// Payment date is assigned at recording time, never by the caller
	assert.False(t, p.PaidAt.Before(before))
	assert.False(t, p.PaidAt.After(time.Now()))
}

func TestNewPayment_Validation(t *testing.T) {
	valid, err := valueobject.NewMoneyUSDFromString("100.00")
	require.NoError(t, err)
	zero := valueobject.ZeroUSD()
	negative, err := valueobject.NewMoneyUSDFromString("-50.00")
	require.NoError(t, err)

	tests := []struct {
		name      string
		invoiceID uuid.UUID
		amount    valueobject.Money
		method    PaymentMethod
		reference string
		errCode   string
	}{
		{"nil invoice id", uuid.Nil, valid, PaymentMethodCash, "", "INVALID_INVOICE"},
		{"zero amount", uuid.New(), zero, PaymentMethodCash, "", "INVALID_AMOUNT"},
		{"negative amount", uuid.New(), negative, PaymentMethodCash, "", "INVALID_AMOUNT"},
		{"invalid method", uuid.New(), valid, PaymentMethod("IOU"), "", "INVALID_PAYMENT_METHOD"},
		{"reference too long", uuid.New(), valid, PaymentMethodCard, strings.Repeat("x", 101), "INVALID_REFERENCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPayment(tt.invoiceID, tt.amount, tt.method, tt.reference, "")
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.errCode, domainErr.Code)
		})
	}
}
