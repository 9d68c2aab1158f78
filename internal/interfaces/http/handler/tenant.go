package handler

import (
	"github.com/gin-gonic/gin"
	tenancyapp "github.com/propman/backend/internal/application/tenancy"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/propman/backend/internal/interfaces/http/dto"
)

// TenantHandler handles tenant-related API endpoints
type TenantHandler struct {
	BaseHandler
	tenancyService *tenancyapp.TenancyService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenancyService *tenancyapp.TenancyService) *TenantHandler {
	return &TenantHandler{tenancyService: tenancyService}
}

// RegisterRoutes registers tenant routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Create)
		tenants.GET("", h.List)
		tenants.GET("/:id", h.GetByID)
		tenants.PUT("/:id", h.Update)
	}
}

// CreateTenantRequest represents a request to register a tenant
type CreateTenantRequest struct {
	FullName         string `json:"full_name" binding:"required,min=1,max=200"`
	Email            string `json:"email" binding:"required,email,max=200"`
	Phone            string `json:"phone" binding:"max=50"`
	IDDocument       string `json:"id_document" binding:"max=100"`
	EmergencyContact string `json:"emergency_contact" binding:"max=200"`
}

// UpdateTenantRequest represents a request to update a tenant's contact info
type UpdateTenantRequest struct {
	FullName string `json:"full_name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Phone    string `json:"phone" binding:"max=50"`
}

// Create registers a new tenant
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenancyService.CreateTenant(c.Request.Context(), tenancyapp.CreateTenantRequest{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		IDDocument:       req.IDDocument,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// GetByID returns a tenant by ID
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenancyService.GetTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Update updates a tenant's contact information
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenancyService.UpdateTenant(c.Request.Context(), id, req.FullName, req.Email, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// List returns tenants matching the query filters
func (h *TenantHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.ApplyDefaults()

	filter := tenancy.TenantFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
	}

	tenants, total, err := h.tenancyService.ListTenants(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, tenants, total, filter.Page, filter.PageSize)
}
