package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/propman/backend/internal/application/billing"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// IdempotencyKeyHeader carries the client's duplicate-submission guard
const IdempotencyKeyHeader = "Idempotency-Key"

// PaymentHandler handles payment-related API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billingapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/billing/payments")
	{
		payments.POST("", h.Record)
		payments.GET("", h.List)
		payments.GET("/:id", h.GetByID)
	}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	InvoiceID string `json:"invoice_id" binding:"required,uuid"`
	Amount    string `json:"amount" binding:"required,money"`
	Method    string `json:"method" binding:"required"`
	Reference string `json:"reference" binding:"max=100"`
	Notes     string `json:"notes" binding:"max=1000"`
}

// Record records a payment against an invoice and returns the settled
// invoice status alongside the stored payment
func (h *PaymentHandler) Record(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	result, err := h.paymentService.RecordPayment(c.Request.Context(), billingapp.RecordPaymentRequest{
		InvoiceID:      uuid.MustParse(req.InvoiceID),
		Amount:         amount,
		Method:         billing.PaymentMethod(req.Method),
		Reference:      req.Reference,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID returns a single payment
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// List returns payments matching the query filters, most recent first
func (h *PaymentHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.ApplyDefaults()

	filter := billing.PaymentFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}

	if v := c.Query("invoice_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid invoice_id")
			return
		}
		filter.InvoiceID = &id
	}
	if v := c.Query("method"); v != "" {
		method := billing.PaymentMethod(v)
		if !method.IsValid() {
			h.BadRequest(c, "Invalid method")
			return
		}
		filter.Method = &method
	}

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}
