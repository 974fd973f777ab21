package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

type CheckoutStep string

const (
	StepCart         CheckoutStep = "cart"
	StepCustomer     CheckoutStep = "customer"
	StepPayment      CheckoutStep = "payment"
	StepConfirmation CheckoutStep = "confirmation"
)

// CheckoutSession is the wizard state for one shopper.
type CheckoutSession struct {
	ID        string       `json:"id"`
	Step      CheckoutStep `json:"step"`
	BranchID  string       `json:"branch_id"`
	Cart      Cart         `json:"cart"`
	Customer  CustomerInfo `json:"customer"`
	OrderID   string       `json:"order_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)

func (c CustomerInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "name is required")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return NewValidationError("email", "email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return NewValidationError("email", "email is not valid")
	}
	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		return NewValidationError("phone", "phone is required")
	}
	if !phonePattern.MatchString(phone) {
		return NewValidationError("phone", "phone is not valid")
	}
	if strings.TrimSpace(c.Address) == "" {
		return NewValidationError("address", "address is required")
	}
	return nil
}
