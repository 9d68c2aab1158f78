package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	maintenanceapp "github.com/propman/backend/internal/application/maintenance"
	"github.com/propman/backend/internal/domain/maintenance"
	"github.com/propman/backend/internal/interfaces/http/dto"
)

// MaintenanceHandler handles maintenance request API endpoints
type MaintenanceHandler struct {
	BaseHandler
	maintenanceService *maintenanceapp.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler
func NewMaintenanceHandler(maintenanceService *maintenanceapp.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// RegisterRoutes registers maintenance routes
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/maintenance/requests")
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/:id", h.GetByID)
		requests.POST("/:id/start", h.Start)
		requests.POST("/:id/resolve", h.Resolve)
		requests.POST("/:id/cancel", h.Cancel)
	}
}

// CreateMaintenanceRequest represents a request to report a maintenance issue
type CreateMaintenanceRequest struct {
	UnitID      string  `json:"unit_id" binding:"required,uuid"`
	TenantID    *string `json:"tenant_id" binding:"omitempty,uuid"`
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Priority    string  `json:"priority" binding:"required"`
}

// Create opens a new maintenance request against a unit
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	priority := maintenance.Priority(req.Priority)
	if !priority.IsValid() {
		h.BadRequest(c, "Invalid priority")
		return
	}

	appReq := maintenanceapp.CreateRequestRequest{
		UnitID:      uuid.MustParse(req.UnitID),
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
	}
	if req.TenantID != nil {
		tenantID := uuid.MustParse(*req.TenantID)
		appReq.TenantID = &tenantID
	}

	request, err := h.maintenanceService.CreateRequest(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// GetByID returns a maintenance request by ID
func (h *MaintenanceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.maintenanceService.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Start moves a request into IN_PROGRESS
func (h *MaintenanceHandler) Start(c *gin.Context) {
	h.transition(c, h.maintenanceService.StartRequest)
}

// Resolve closes a request as fixed
func (h *MaintenanceHandler) Resolve(c *gin.Context) {
	h.transition(c, h.maintenanceService.ResolveRequest)
}

// Cancel closes a request without action
func (h *MaintenanceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.maintenanceService.CancelRequest)
}

// List returns maintenance requests matching the query filters
func (h *MaintenanceHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.ApplyDefaults()

	filter := maintenance.RequestFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}
	if v := c.Query("unit_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid unit_id")
			return
		}
		filter.UnitID = &id
	}
	if v := c.Query("tenant_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid tenant_id")
			return
		}
		filter.TenantID = &id
	}
	if v := c.Query("status"); v != "" {
		status := maintenance.RequestStatus(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := maintenance.Priority(v)
		if !priority.IsValid() {
			h.BadRequest(c, "Invalid priority")
			return
		}
		filter.Priority = &priority
	}

	requests, total, err := h.maintenanceService.ListRequests(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, requests, total, filter.Page, filter.PageSize)
}

func (h *MaintenanceHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*maintenance.Request, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}
