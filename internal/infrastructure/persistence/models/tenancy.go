package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// TenantModel is the persistence model for tenants
type TenantModel struct {
	AggregateModel
	FullName         string `gorm:"type:varchar(200);not null"`
	Email            string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone            string `gorm:"type:varchar(50)"`
	IDDocument       string `gorm:"type:varchar(50);column:id_document"`
	EmergencyContact string `gorm:"type:varchar(200)"`
	Notes            string `gorm:"type:text"`
}

// TableName returns the table name for TenantModel
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain tenant
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FullName:          m.FullName,
		Email:             m.Email,
		Phone:             m.Phone,
		IDDocument:        m.IDDocument,
		EmergencyContact:  m.EmergencyContact,
		Notes:             m.Notes,
	}
}

// FromDomain populates the model from a domain tenant
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.FullName = t.FullName
	m.Email = t.Email
	m.Phone = t.Phone
	m.IDDocument = t.IDDocument
	m.EmergencyContact = t.EmergencyContact
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a model from a domain tenant
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// LeaseModel is the persistence model for leases
type LeaseModel struct {
	AggregateModel
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartDate  time.Time       `gorm:"not null"`
	EndDate    time.Time       `gorm:"not null"`
	RentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Deposit    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;index"`
	EndedAt    *time.Time
}

// TableName returns the table name for LeaseModel
func (LeaseModel) TableName() string {
	return "leases"
}

// ToDomain converts the model to a domain lease
func (m *LeaseModel) ToDomain() *tenancy.Lease {
	return &tenancy.Lease{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		UnitID:            m.UnitID,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		RentAmount:        m.RentAmount,
		Deposit:           m.Deposit,
		Status:            tenancy.LeaseStatus(m.Status),
		EndedAt:           m.EndedAt,
	}
}

// FromDomain populates the model from a domain lease
func (m *LeaseModel) FromDomain(l *tenancy.Lease) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.TenantID = l.TenantID
	m.UnitID = l.UnitID
	m.StartDate = l.StartDate
	m.EndDate = l.EndDate
	m.RentAmount = l.RentAmount
	m.Deposit = l.Deposit
	m.Status = string(l.Status)
	m.EndedAt = l.EndedAt
}

// LeaseModelFromDomain creates a model from a domain lease
func LeaseModelFromDomain(l *tenancy.Lease) *LeaseModel {
	m := &LeaseModel{}
	m.FromDomain(l)
	return m
}
