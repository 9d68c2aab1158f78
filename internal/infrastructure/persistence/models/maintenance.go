package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/maintenance"
)

// MaintenanceRequestModel is the persistence model for maintenance requests
type MaintenanceRequestModel struct {
	AggregateModel
	UnitID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TenantID    *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	Priority    string     `gorm:"type:varchar(10);not null;index"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	ResolvedAt  *time.Time
}

// TableName returns the table name for MaintenanceRequestModel
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the model to a domain request
func (m *MaintenanceRequestModel) ToDomain() *maintenance.Request {
	return &maintenance.Request{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UnitID:            m.UnitID,
		TenantID:          m.TenantID,
		Title:             m.Title,
		Description:       m.Description,
		Priority:          maintenance.Priority(m.Priority),
		Status:            maintenance.RequestStatus(m.Status),
		ResolvedAt:        m.ResolvedAt,
	}
}

// FromDomain populates the model from a domain request
func (m *MaintenanceRequestModel) FromDomain(r *maintenance.Request) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.UnitID = r.UnitID
	m.TenantID = r.TenantID
	m.Title = r.Title
	m.Description = r.Description
	m.Priority = string(r.Priority)
	m.Status = string(r.Status)
	m.ResolvedAt = r.ResolvedAt
}

// MaintenanceRequestModelFromDomain creates a model from a domain request
func MaintenanceRequestModelFromDomain(r *maintenance.Request) *MaintenanceRequestModel {
	m := &MaintenanceRequestModel{}
	m.FromDomain(r)
	return m
}
