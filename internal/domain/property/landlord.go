package property

import (
	"regexp"

	"github.com/propman/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

// Landlord represents a property owner
type Landlord struct {
	shared.BaseAggregateRoot
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	BankName    string `json:"bank_name,omitempty"`
	BankAccount string `json:"bank_account,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// NewLandlord creates a new landlord with required fields
func NewLandlord(fullName, email, phone string) (*Landlord, error) {
	if err := validatePersonName(fullName); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}

	return &Landlord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          fullName,
		Email:             email,
		Phone:             phone,
	}, nil
}

// Update updates the landlord's contact information
func (l *Landlord) Update(fullName, email, phone string) error {
	if err := validatePersonName(fullName); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	l.FullName = fullName
	l.Email = email
	l.Phone = phone
	l.Touch()
	l.IncrementVersion()

	return nil
}

// SetBankDetails sets the payout account details
func (l *Landlord) SetBankDetails(bankName, bankAccount string) error {
	if len(bankName) > 100 {
		return shared.NewDomainError("INVALID_BANK_NAME", "Bank name cannot exceed 100 characters")
	}
	if len(bankAccount) > 50 {
		return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Bank account cannot exceed 50 characters")
	}

	l.BankName = bankName
	l.BankAccount = bankAccount
	l.Touch()
	l.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (l *Landlord) SetNotes(notes string) {
	l.Notes = notes
	l.Touch()
	l.IncrementVersion()
}

// Validation functions

func validatePersonName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
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

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
