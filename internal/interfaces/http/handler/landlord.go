package handler

import (
	"github.com/gin-gonic/gin"
	propertyapp "github.com/propman/backend/internal/application/property"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/interfaces/http/dto"
)

// LandlordHandler handles landlord-related API endpoints
type LandlordHandler struct {
	BaseHandler
	landlordService *propertyapp.LandlordService
}

// NewLandlordHandler creates a new LandlordHandler
func NewLandlordHandler(landlordService *propertyapp.LandlordService) *LandlordHandler {
	return &LandlordHandler{landlordService: landlordService}
}

// RegisterRoutes registers landlord routes
func (h *LandlordHandler) RegisterRoutes(rg *gin.RouterGroup) {
	landlords := rg.Group("/landlords")
	{
		landlords.POST("", h.Create)
		landlords.GET("", h.List)
		landlords.GET("/:id", h.GetByID)
		landlords.PUT("/:id", h.Update)
		landlords.DELETE("/:id", h.Delete)
	}
}

// CreateLandlordRequest represents a request to register a landlord
type CreateLandlordRequest struct {
	FullName    string `json:"full_name" binding:"required,min=1,max=200"`
	Email       string `json:"email" binding:"required,email,max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	BankName    string `json:"bank_name" binding:"max=100"`
	BankAccount string `json:"bank_account" binding:"max=50"`
	Notes       string `json:"notes"`
}

// UpdateLandlordRequest represents a request to update a landlord
type UpdateLandlordRequest struct {
	FullName    string `json:"full_name" binding:"required,min=1,max=200"`
	Email       string `json:"email" binding:"required,email,max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	BankName    string `json:"bank_name" binding:"max=100"`
	BankAccount string `json:"bank_account" binding:"max=50"`
}

// Create registers a new landlord
func (h *LandlordHandler) Create(c *gin.Context) {
	var req CreateLandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	landlord, err := h.landlordService.CreateLandlord(c.Request.Context(), propertyapp.CreateLandlordRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		BankName:    req.BankName,
		BankAccount: req.BankAccount,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, landlord)
}

// GetByID returns a landlord by ID
func (h *LandlordHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid landlord ID")
		return
	}

	landlord, err := h.landlordService.GetLandlord(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, landlord)
}

// Update updates a landlord's details
func (h *LandlordHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid landlord ID")
		return
	}

	var req UpdateLandlordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	landlord, err := h.landlordService.UpdateLandlord(c.Request.Context(), id, propertyapp.UpdateLandlordRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		BankName:    req.BankName,
		BankAccount: req.BankAccount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, landlord)
}

// List returns landlords matching the query filters
func (h *LandlordHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.ApplyDefaults()

	filter := property.LandlordFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
	}

	landlords, total, err := h.landlordService.ListLandlords(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, landlords, total, filter.Page, filter.PageSize)
}

// Delete removes a landlord
func (h *LandlordHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid landlord ID")
		return
	}

	if err := h.landlordService.DeleteLandlord(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
