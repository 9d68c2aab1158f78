package tenancy

import (
	"regexp"

	"github.com/propman/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

// Tenant represents a renter occupying (or applying for) a unit
type Tenant struct {
	shared.BaseAggregateRoot
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	IDDocument       string `json:"id_document,omitempty"` // National ID / passport number
	EmergencyContact string `json:"emergency_contact,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// NewTenant creates a new tenant with required fields
func NewTenant(fullName, email, phone string) (*Tenant, error) {
	if err := validateTenantName(fullName); err != nil {
		return nil, err
	}
	if err := validateTenantEmail(email); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validateTenantPhone(phone); err != nil {
			return nil, err
		}
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          fullName,
		Email:             email,
		Phone:             phone,
	}, nil
}

// Update updates the tenant's contact information
func (t *Tenant) Update(fullName, email, phone string) error {
	if err := validateTenantName(fullName); err != nil {
		return err
	}
	if err := validateTenantEmail(email); err != nil {
		return err
	}
	if phone != "" {
		if err := validateTenantPhone(phone); err != nil {
			return err
		}
	}

	t.FullName = fullName
	t.Email = email
	t.Phone = phone
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetIdentification sets the tenant's identity document reference
func (t *Tenant) SetIdentification(idDocument string) error {
	if len(idDocument) > 50 {
		return shared.NewDomainError("INVALID_ID_DOCUMENT", "ID document cannot exceed 50 characters")
	}

	t.IDDocument = idDocument
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetEmergencyContact sets the tenant's emergency contact
func (t *Tenant) SetEmergencyContact(contact string) error {
	if len(contact) > 200 {
		return shared.NewDomainError("INVALID_EMERGENCY_CONTACT", "Emergency contact cannot exceed 200 characters")
	}

	t.EmergencyContact = contact
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (t *Tenant) SetNotes(notes string) {
	t.Notes = notes
	t.Touch()
	t.IncrementVersion()
}

// Validation functions

func validateTenantName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}

func validateTenantEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateTenantPhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
