package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for invoices
type InvoiceModel struct {
	AggregateModel
	Number      string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LeaseID     *uuid.UUID      `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDate     *time.Time      `gorm:"index"`
	Description string          `gorm:"type:text"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
	PaidAt      *time.Time
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model to a domain invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		TenantID:          m.TenantID,
		UnitID:            m.UnitID,
		LeaseID:           m.LeaseID,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		Description:       m.Description,
		Status:            billing.InvoiceStatus(m.Status),
		PaidAt:            m.PaidAt,
	}
}

// FromDomain populates the model from a domain invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.Number = inv.Number
	m.TenantID = inv.TenantID
	m.UnitID = inv.UnitID
	m.LeaseID = inv.LeaseID
	m.Amount = inv.Amount
	m.DueDate = inv.DueDate
	m.Description = inv.Description
	m.Status = string(inv.Status)
	m.PaidAt = inv.PaidAt
}

// InvoiceModelFromDomain creates a model from a domain invoice
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for payments.
// Payments are append-only; rows are never updated or deleted.
type PaymentModel struct {
	BaseModel
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Method    string          `gorm:"type:varchar(20);not null"`
	Reference string          `gorm:"type:varchar(100)"`
	Notes     string          `gorm:"type:text"`
	PaidAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for PaymentModel
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		InvoiceID:  m.InvoiceID,
		Amount:     m.Amount,
		Method:     billing.PaymentMethod(m.Method),
		Reference:  m.Reference,
		Notes:      m.Notes,
		PaidAt:     m.PaidAt,
	}
}

// FromDomain populates the model from a domain payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.Method = string(p.Method)
	m.Reference = p.Reference
	m.Notes = p.Notes
	m.PaidAt = p.PaidAt
}

// PaymentModelFromDomain creates a model from a domain payment
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
