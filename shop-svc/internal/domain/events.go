package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated         = "order.created"
	EventOrderNew             = "order.new"
	EventOrderSeen            = "order.seen"
	EventOrderStatusChanged   = "order.status_changed"
	EventPaymentStatusChanged = "order.payment_changed"
)

type EventItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// Event is what the core hands to notification surfaces.
type Event struct {
	Kind     string          `json:"kind"`
	OrderID  string          `json:"order_id"`
	BranchID string          `json:"branch_id"`
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Total    decimal.Decimal `json:"total"`
	Items    []EventItem     `json:"items,omitempty"`
	At       time.Time       `json:"at"`
}

func NewOrderEvent(kind string, order Order, at time.Time) Event {
	items := make([]EventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, EventItem{ProductID: item.ProductID, Name: item.Name, Quantity: item.Quantity})
	}
	return Event{
		Kind:     kind,
		OrderID:  order.ID,
		BranchID: order.BranchID,
		Total:    order.Total,
		Items:    items,
		At:       at,
	}
}

func NewTransitionEvent(order Order, transition StatusTransition) Event {
	kind := EventOrderStatusChanged
	if transition.Field == FieldPayment {
		kind = EventPaymentStatusChanged
	}
	return Event{
		Kind:     kind,
		OrderID:  order.ID,
		BranchID: order.BranchID,
		From:     transition.From,
		To:       transition.To,
		Total:    order.Total,
		At:       transition.At,
	}
}
