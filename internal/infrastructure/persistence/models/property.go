package models

import (
	"github.com/google/uuid"
	"github.com/propman/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// LandlordModel is the persistence model for landlords
type LandlordModel struct {
	AggregateModel
	FullName    string `gorm:"type:varchar(200);not null"`
	Email       string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone       string `gorm:"type:varchar(50)"`
	BankName    string `gorm:"type:varchar(100)"`
	BankAccount string `gorm:"type:varchar(50)"`
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for LandlordModel
func (LandlordModel) TableName() string {
	return "landlords"
}

// ToDomain converts the model to a domain landlord
func (m *LandlordModel) ToDomain() *property.Landlord {
	return &property.Landlord{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FullName:          m.FullName,
		Email:             m.Email,
		Phone:             m.Phone,
		BankName:          m.BankName,
		BankAccount:       m.BankAccount,
		Notes:             m.Notes,
	}
}

// FromDomain populates the model from a domain landlord
func (m *LandlordModel) FromDomain(l *property.Landlord) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.FullName = l.FullName
	m.Email = l.Email
	m.Phone = l.Phone
	m.BankName = l.BankName
	m.BankAccount = l.BankAccount
	m.Notes = l.Notes
}

// LandlordModelFromDomain creates a model from a domain landlord
func LandlordModelFromDomain(l *property.Landlord) *LandlordModel {
	m := &LandlordModel{}
	m.FromDomain(l)
	return m
}

// PropertyModel is the persistence model for properties
type PropertyModel struct {
	AggregateModel
	Name       string    `gorm:"type:varchar(200);not null"`
	Address    string    `gorm:"type:varchar(500);not null"`
	City       string    `gorm:"type:varchar(100);index"`
	LandlordID uuid.UUID `gorm:"type:uuid;not null;index"`
	Notes      string    `gorm:"type:text"`
}

// TableName returns the table name for PropertyModel
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the model to a domain property
func (m *PropertyModel) ToDomain() *property.Property {
	return &property.Property{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		City:              m.City,
		LandlordID:        m.LandlordID,
		Notes:             m.Notes,
	}
}

// FromDomain populates the model from a domain property
func (m *PropertyModel) FromDomain(p *property.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Address = p.Address
	m.City = p.City
	m.LandlordID = p.LandlordID
	m.Notes = p.Notes
}

// PropertyModelFromDomain creates a model from a domain property
func PropertyModelFromDomain(p *property.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// UnitModel is the persistence model for rentable units
type UnitModel struct {
	AggregateModel
	PropertyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Label       string          `gorm:"type:varchar(50);not null"`
	Bedrooms    int             `gorm:"not null;default:0"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for UnitModel
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the model to a domain unit
func (m *UnitModel) ToDomain() *property.Unit {
	return &property.Unit{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PropertyID:        m.PropertyID,
		Label:             m.Label,
		Bedrooms:          m.Bedrooms,
		MonthlyRent:       m.MonthlyRent,
		Status:            property.UnitStatus(m.Status),
	}
}

// FromDomain populates the model from a domain unit
func (m *UnitModel) FromDomain(u *property.Unit) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.PropertyID = u.PropertyID
	m.Label = u.Label
	m.Bedrooms = u.Bedrooms
	m.MonthlyRent = u.MonthlyRent
	m.Status = string(u.Status)
}

// UnitModelFromDomain creates a model from a domain unit
func UnitModelFromDomain(u *property.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}
