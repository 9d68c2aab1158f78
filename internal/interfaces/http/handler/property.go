package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	propertyapp "github.com/propman/backend/internal/application/property"
	"github.com/propman/backend/internal/domain/property"
	"github.com/propman/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// PropertyHandler handles property and unit API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *propertyapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *propertyapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// RegisterRoutes registers property and unit routes
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.POST("", h.Create)
		properties.GET("", h.List)
		properties.GET("/:id", h.GetByID)
		properties.PUT("/:id", h.Update)
		properties.DELETE("/:id", h.Delete)
	}

	units := rg.Group("/units")
	{
		units.POST("", h.CreateUnit)
		units.GET("", h.ListUnits)
		units.GET("/:id", h.GetUnit)
		units.PUT("/:id", h.UpdateUnit)
	}
}

// CreatePropertyRequest represents a request to register a property
type CreatePropertyRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Address    string `json:"address" binding:"required,min=1,max=500"`
	City       string `json:"city" binding:"max=100"`
	LandlordID string `json:"landlord_id" binding:"required,uuid"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"required,min=1,max=500"`
	City    string `json:"city" binding:"max=100"`
}

// Create registers a new property
func (h *PropertyHandler) Create(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	prop, err := h.propertyService.CreateProperty(c.Request.Context(), propertyapp.CreatePropertyRequest{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		LandlordID: uuid.MustParse(req.LandlordID),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, prop)
}

// GetByID returns a property together with its units
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	prop, units, err := h.propertyService.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"property": prop, "units": units})
}

// Update updates a property's basic information
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	prop, err := h.propertyService.UpdateProperty(c.Request.Context(), id, req.Name, req.Address, req.City)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prop)
}

// List returns properties matching the query filters
func (h *PropertyHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.ApplyDefaults()

	filter := property.PropertyFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
	}
	if v := c.Query("landlord_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid landlord_id")
			return
		}
		filter.LandlordID = &id
	}
	if v := c.Query("city"); v != "" {
		filter.City = &v
	}

	properties, total, err := h.propertyService.ListProperties(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, properties, total, filter.Page, filter.PageSize)
}

// Delete removes a property without units
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	if err := h.propertyService.DeleteProperty(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateUnitRequest represents a request to add a unit to a property
type CreateUnitRequest struct {
	PropertyID  string `json:"property_id" binding:"required,uuid"`
	Label       string `json:"label" binding:"required,min=1,max=50"`
	Bedrooms    int    `json:"bedrooms" binding:"min=0"`
	MonthlyRent string `json:"monthly_rent" binding:"required,money"`
}

// UpdateUnitRequest represents a request to update a unit
type UpdateUnitRequest struct {
	Label       string `json:"label" binding:"required,min=1,max=50"`
	Bedrooms    int    `json:"bedrooms" binding:"min=0"`
	MonthlyRent string `json:"monthly_rent" binding:"required,money"`
}

// CreateUnit adds a rentable unit to a property
func (h *PropertyHandler) CreateUnit(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rent, err := decimal.NewFromString(req.MonthlyRent)
	if err != nil {
		h.BadRequest(c, "Invalid monthly_rent")
		return
	}

	unit, err := h.propertyService.CreateUnit(c.Request.Context(), propertyapp.CreateUnitRequest{
		PropertyID:  uuid.MustParse(req.PropertyID),
		Label:       req.Label,
		Bedrooms:    req.Bedrooms,
		MonthlyRent: rent,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, unit)
}

// GetUnit returns a unit by ID
func (h *PropertyHandler) GetUnit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	unit, err := h.propertyService.GetUnit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// UpdateUnit updates a unit's letting details
func (h *PropertyHandler) UpdateUnit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rent, err := decimal.NewFromString(req.MonthlyRent)
	if err != nil {
		h.BadRequest(c, "Invalid monthly_rent")
		return
	}

	unit, err := h.propertyService.UpdateUnit(c.Request.Context(), id, req.Label, req.Bedrooms, rent)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, unit)
}

// ListUnits returns units matching the query filters
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	listReq.ApplyDefaults()

	filter := property.UnitFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}
	if v := c.Query("property_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid property_id")
			return
		}
		filter.PropertyID = &id
	}
	if v := c.Query("status"); v != "" {
		status := property.UnitStatus(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}

	units, total, err := h.propertyService.ListUnits(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, units, total, filter.Page, filter.PageSize)
}
