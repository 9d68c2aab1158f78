package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tenancyapp "github.com/propman/backend/internal/application/tenancy"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// LeaseHandler handles lease-related API endpoints
type LeaseHandler struct {
	BaseHandler
	tenancyService *tenancyapp.TenancyService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(tenancyService *tenancyapp.TenancyService) *LeaseHandler {
	return &LeaseHandler{tenancyService: tenancyService}
}

// RegisterRoutes registers lease routes
func (h *LeaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	leases := rg.Group("/leases")
	{
		leases.POST("", h.Create)
		leases.GET("", h.List)
		leases.GET("/:id", h.GetByID)
		leases.POST("/:id/end", h.End)
		leases.POST("/:id/terminate", h.Terminate)
	}
}

// CreateLeaseRequest represents a request to open a lease
type CreateLeaseRequest struct {
	TenantID   string `json:"tenant_id" binding:"required,uuid"`
	UnitID     string `json:"unit_id" binding:"required,uuid"`
	StartDate  string `json:"start_date" binding:"required"` // RFC 3339
	EndDate    string `json:"end_date" binding:"required"`   // RFC 3339
	RentAmount string `json:"rent_amount" binding:"required,money"`
	Deposit    string `json:"deposit" binding:"omitempty,money"`
}

// Create opens a new lease on a vacant unit
func (h *LeaseHandler) Create(c *gin.Context) {
	var req CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		h.BadRequest(c, "Invalid start_date, expected RFC 3339")
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		h.BadRequest(c, "Invalid end_date, expected RFC 3339")
		return
	}

	rent, err := decimal.NewFromString(req.RentAmount)
	if err != nil {
		h.BadRequest(c, "Invalid rent_amount")
		return
	}
	deposit := decimal.Zero
	if req.Deposit != "" {
		deposit, err = decimal.NewFromString(req.Deposit)
		if err != nil {
			h.BadRequest(c, "Invalid deposit")
			return
		}
	}

	lease, err := h.tenancyService.CreateLease(c.Request.Context(), tenancyapp.CreateLeaseRequest{
		TenantID:   uuid.MustParse(req.TenantID),
		UnitID:     uuid.MustParse(req.UnitID),
		StartDate:  startDate,
		EndDate:    endDate,
		RentAmount: rent,
		Deposit:    deposit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lease)
}

// GetByID returns a lease by ID
func (h *LeaseHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	lease, err := h.tenancyService.GetLease(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lease)
}

// End closes a lease at its agreed conclusion and frees the unit
func (h *LeaseHandler) End(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	lease, err := h.tenancyService.EndLease(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lease)
}

// Terminate cuts a lease short and frees the unit
func (h *LeaseHandler) Terminate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lease ID")
		return
	}

	lease, err := h.tenancyService.TerminateLease(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lease)
}

// List returns leases matching the query filters
func (h *LeaseHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.ApplyDefaults()

	filter := tenancy.LeaseFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}
	if v := c.Query("tenant_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid tenant_id")
			return
		}
		filter.TenantID = &id
	}
	if v := c.Query("unit_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid unit_id")
			return
		}
		filter.UnitID = &id
	}
	if v := c.Query("status"); v != "" {
		status := tenancy.LeaseStatus(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}

	leases, total, err := h.tenancyService.ListLeases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, leases, total, filter.Page, filter.PageSize)
}
