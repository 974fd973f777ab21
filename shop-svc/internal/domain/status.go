package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists the lifecycle in progression order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

const (
	FieldStatus  = "status"
	FieldPayment = "payment_status"
)

// StatusTransition is one entry of an order's audit history.
type StatusTransition struct {
	OrderID string    `json:"order_id"`
	Field   string    `json:"field"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
	Warning string    `json:"warning,omitempty"`
}

// TransitionPolicy decides whether a status change may happen. A non-empty
// warning lets the change through but marks it in the history.
type TransitionPolicy interface {
	Check(from, to OrderStatus) (warning string, err error)
}

// PermissivePolicy allows any move so mis-clicks can be undone. Leaving a
// terminal state is flagged.
type PermissivePolicy struct{}

func (PermissivePolicy) Check(from, to OrderStatus) (string, error) {
	if from.Terminal() && from != to {
		return fmt.Sprintf("order left terminal status %s", from), nil
	}
	return "", nil
}

// StrictPolicy only allows forward progression or cancellation.
type StrictPolicy struct{}

var strictTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCancelled},
}

func (StrictPolicy) Check(from, to OrderStatus) (string, error) {
	for _, allowed := range strictTransitions[from] {
		if allowed == to {
			return "", nil
		}
	}
	return "", fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
}

// Transition is the only way an order's status changes.
func Transition(order *Order, to OrderStatus, policy TransitionPolicy, now time.Time) (StatusTransition, error) {
	if !to.Valid() {
		return StatusTransition{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	warning, err := policy.Check(order.Status, to)
	if err != nil {
		return StatusTransition{}, err
	}

	record := StatusTransition{
		OrderID: order.ID,
		Field:   FieldStatus,
		From:    string(order.Status),
		To:      string(to),
		At:      now,
		Warning: warning,
	}
	order.Status = to
	order.UpdatedAt = now
	order.IsNew = false
	return record, nil
}

// SetPaymentStatus changes the payment axis; it never touches Status.
func SetPaymentStatus(order *Order, to PaymentStatus, now time.Time) (StatusTransition, error) {
	if !to.Valid() {
		return StatusTransition{}, fmt.Errorf("%w: unknown payment status %q", ErrInvalidTransition, to)
	}
	record := StatusTransition{
		OrderID: order.ID,
		Field:   FieldPayment,
		From:    string(order.PaymentStatus),
		To:      string(to),
		At:      now,
	}
	order.PaymentStatus = to
	order.UpdatedAt = now
	order.IsNew = false
	return record, nil
}
