package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/propman/backend/internal/application/billing"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/domain/shared"
	"github.com/propman/backend/internal/domain/shared/valueobject"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory repositories backing the payment endpoints under test

type stubInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]billing.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]billing.Invoice)}
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := inv
	return &copied, nil
}

func (r *stubInvoiceRepo) FindByNumber(_ context.Context, number string) (*billing.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.Number == number {
			copied := inv
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubInvoiceRepo) FindAll(_ context.Context, _ billing.InvoiceFilter) ([]billing.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]billing.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (r *stubInvoiceRepo) Count(_ context.Context, _ billing.InvoiceFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.invoices)), nil
}

func (r *stubInvoiceRepo) Save(_ context.Context, inv *billing.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *stubInvoiceRepo) SaveWithLock(_ context.Context, inv *billing.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != inv.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.invoices[inv.ID] = *inv
	return nil
}

func (r *stubInvoiceRepo) GenerateInvoiceNumber(_ context.Context) (string, error) {
	return "INV-20260801-00001", nil
}

type stubPaymentRepo struct {
	mu       sync.Mutex
	payments []billing.Payment
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*billing.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID == id {
			copied := p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubPaymentRepo) FindByInvoiceID(_ context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []billing.Payment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) FindAll(_ context.Context, _ billing.PaymentFilter) ([]billing.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]billing.Payment(nil), r.payments...), nil
}

func (r *stubPaymentRepo) Count(_ context.Context, _ billing.PaymentFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.payments)), nil
}

func (r *stubPaymentRepo) Create(_ context.Context, p *billing.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, *p)
	return nil
}

type stubIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]struct{})}
}

func (s *stubIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = struct{}{}
	return true, nil
}

func (s *stubIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}

func (s *stubIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *stubIdempotencyStore) Close() error { return nil }

type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, _ ...shared.DomainEvent) error { return nil }

type paymentHandlerFixture struct {
	router  *gin.Engine
	invoice *billing.Invoice
}

func newPaymentHandlerFixture(t *testing.T, invoiceAmount string) *paymentHandlerFixture {
	t.Helper()

	invoiceRepo := newStubInvoiceRepo()
	paymentRepo := &stubPaymentRepo{}

	amount, err := valueobject.NewMoneyUSDFromString(invoiceAmount)
	require.NoError(t, err)
	invoice, err := billing.NewInvoice("INV-20260801-00001", uuid.New(), uuid.New(), nil, amount, nil, "Rent")
	require.NoError(t, err)
	invoice.ClearDomainEvents()
	require.NoError(t, invoiceRepo.Save(context.Background(), invoice))

	service := billingapp.NewPaymentService(invoiceRepo, paymentRepo, newStubIdempotencyStore(), noopPublisher{}, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	NewPaymentHandler(service).RegisterRoutes(api)

	return &paymentHandlerFixture{router: router, invoice: invoice}
}

func (f *paymentHandlerFixture) record(t *testing.T, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/billing/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_Record(t *testing.T) {
	f := newPaymentHandlerFixture(t, "500.00")

	body := fmt.Sprintf(`{"invoice_id":%q,"amount":"200.00","method":"BANK_TRANSFER"}`, f.invoice.ID)
	w := f.record(t, body, nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(billing.InvoiceStatusPartiallyPaid), data["invoice_status"])
	assert.Equal(t, "200", data["total_paid"])
}

func TestPaymentHandler_Record_InvalidAmount(t *testing.T) {
	f := newPaymentHandlerFixture(t, "500.00")

	body := fmt.Sprintf(`{"invoice_id":%q,"amount":"abc","method":"CASH"}`, f.invoice.ID)
	w := f.record(t, body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Record_NegativeAmount(t *testing.T) {
	f := newPaymentHandlerFixture(t, "500.00")

	body := fmt.Sprintf(`{"invoice_id":%q,"amount":"-50.00","method":"CASH"}`, f.invoice.ID)
	w := f.record(t, body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_AMOUNT", resp.Error.Code)
}

func TestPaymentHandler_Record_InvoiceNotFound(t *testing.T) {
	f := newPaymentHandlerFixture(t, "500.00")

	body := fmt.Sprintf(`{"invoice_id":%q,"amount":"100.00","method":"CASH"}`, uuid.New())
	w := f.record(t, body, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVOICE_NOT_FOUND", resp.Error.Code)
}

func TestPaymentHandler_Record_DuplicateSubmission(t *testing.T) {
	f := newPaymentHandlerFixture(t, "500.00")

	body := fmt.Sprintf(`{"invoice_id":%q,"amount":"200.00","method":"CASH"}`, f.invoice.ID)
	headers := map[string]string{IdempotencyKeyHeader: "client-key-1"}

	w := f.record(t, body, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.record(t, body, headers)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DUPLICATE_PAYMENT", resp.Error.Code)
}

func TestPaymentHandler_GetByID_InvalidUUID(t *testing.T) {
	f := newPaymentHandlerFixture(t, "500.00")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/billing/payments/not-a-uuid", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_List(t *testing.T) {
	f := newPaymentHandlerFixture(t, "500.00")

	body := fmt.Sprintf(`{"invoice_id":%q,"amount":"100.00","method":"CASH"}`, f.invoice.ID)
	require.Equal(t, http.StatusCreated, f.record(t, body, nil).Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/billing/payments?invoice_id="+f.invoice.ID.String(), nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestPaymentHandler_List_InvalidMethod(t *testing.T) {
	f := newPaymentHandlerFixture(t, "500.00")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/billing/payments?method=BARTER", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
