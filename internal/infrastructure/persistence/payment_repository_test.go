package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPaymentRepository creates a GormPaymentRepository with a mocked SQL connection
func newMockPaymentRepository(t *testing.T) (*GormPaymentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPaymentRepository(gormDB), mock, mockDB
}

func paymentColumns() []string {
	return []string{"id", "created_at", "updated_at", "invoice_id", "amount", "method", "reference", "notes", "paid_at"}
}

func TestGormPaymentRepository_FindByID(t *testing.T) {
	t.Run("finds existing payment", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()
		invoiceID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(paymentColumns()).
			AddRow(paymentID, now, now, invoiceID, decimal.NewFromInt(150), "CASH", "", "", now)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnRows(rows)

		payment, err := repo.FindByID(context.Background(), paymentID)

		assert.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, paymentID, payment.ID)
		assert.Equal(t, invoiceID, payment.InvoiceID)
		assert.Equal(t, billing.PaymentMethodCash, payment.Method)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing payment", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		payment, err := repo.FindByID(context.Background(), paymentID)

		assert.Error(t, err)
		assert.Nil(t, payment)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindByInvoiceID(t *testing.T) {
	t.Run("returns payments oldest first", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		now := time.Now()
		first := uuid.New()
		second := uuid.New()

		rows := sqlmock.NewRows(paymentColumns()).
			AddRow(first, now, now, invoiceID, decimal.NewFromInt(100), "CASH", "", "", now.Add(-2*time.Hour)).
			AddRow(second, now, now, invoiceID, decimal.NewFromInt(200), "CARD", "", "", now.Add(-time.Hour))

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE invoice_id = \$1 ORDER BY paid_at ASC`).
			WithArgs(invoiceID).
			WillReturnRows(rows)

		payments, err := repo.FindByInvoiceID(context.Background(), invoiceID)

		assert.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, first, payments[0].ID)
		assert.Equal(t, second, payments[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when no payments recorded", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE invoice_id = \$1 ORDER BY paid_at ASC`).
			WithArgs(invoiceID).
			WillReturnRows(sqlmock.NewRows(paymentColumns()))

		payments, err := repo.FindByInvoiceID(context.Background(), invoiceID)

		assert.NoError(t, err)
		assert.Empty(t, payments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_Create(t *testing.T) {
	t.Run("inserts a new payment row", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		payment, err := billing.NewPayment(
			uuid.New(),
			valueobject.NewMoneyUSD(decimal.NewFromInt(250)),
			billing.PaymentMethodBankTransfer,
			"wire-123",
			"",
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "payments"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(context.Background(), payment)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
