package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInvoiceRepository creates a GormInvoiceRepository with a mocked SQL connection
func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func invoiceRows(id, tenantID, unitID uuid.UUID, number string, amount decimal.Decimal, status string, version int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"number", "tenant_id", "unit_id", "lease_id",
		"amount", "due_date", "description", "status", "paid_at",
	}).AddRow(id, now, now, version, number, tenantID, unitID, nil, amount, nil, "", status, nil)
}

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("finds existing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		tenantID := uuid.New()
		unitID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(invoiceRows(invoiceID, tenantID, unitID, "INV-20260801-00001", decimal.NewFromInt(500), "UNPAID", 1))

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, invoiceID, invoice.ID)
		assert.Equal(t, "INV-20260801-00001", invoice.Number)
		assert.Equal(t, billing.InvoiceStatusUnpaid, invoice.Status)
		assert.Equal(t, 1, invoice.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.Error(t, err)
		assert.Nil(t, invoice)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindByNumber(t *testing.T) {
	t.Run("finds invoice by number", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE number = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("INV-20260801-00042", 1).
			WillReturnRows(invoiceRows(invoiceID, uuid.New(), uuid.New(), "INV-20260801-00042", decimal.NewFromInt(750), "PARTIALLY_PAID", 2))

		invoice, err := repo.FindByNumber(context.Background(), "INV-20260801-00042")

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, "INV-20260801-00042", invoice.Number)
		assert.Equal(t, billing.InvoiceStatusPartiallyPaid, invoice.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	t.Run("updates when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice := &billing.Invoice{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Number:            "INV-20260801-00001",
			TenantID:          uuid.New(),
			UnitID:            uuid.New(),
			Amount:            decimal.NewFromInt(500),
			Status:            billing.InvoiceStatusPaid,
		}
		invoice.Version = 2 // loaded at 1, bumped by reconcile

		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), invoice)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns conflict when a concurrent writer won", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice := &billing.Invoice{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Number:            "INV-20260801-00001",
			TenantID:          uuid.New(),
			UnitID:            uuid.New(),
			Amount:            decimal.NewFromInt(500),
			Status:            billing.InvoiceStatusPaid,
		}
		invoice.Version = 2

		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), invoice)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_GenerateInvoiceNumber(t *testing.T) {
	prefix := fmt.Sprintf("INV-%s-", time.Now().Format("20060102"))

	t.Run("starts at one when no invoices exist today", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "number" FROM "invoices" WHERE number LIKE \$1 ORDER BY number DESC LIMIT .*`).
			WithArgs(prefix+"%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"number"}))

		number, err := repo.GenerateInvoiceNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00001", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the highest existing number", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "number" FROM "invoices" WHERE number LIKE \$1 ORDER BY number DESC LIMIT .*`).
			WithArgs(prefix+"%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"number"}).AddRow(prefix + "00041"))

		number, err := repo.GenerateInvoiceNumber(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, prefix+"00042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
