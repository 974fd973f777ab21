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

// OrderEvent is the payload shop-svc publishes on the order events topic.
type OrderEvent struct {
	Kind     string          `json:"kind"`
	OrderID  string          `json:"order_id"`
	BranchID string          `json:"branch_id"`
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Total    decimal.Decimal `json:"total"`
	Items    []EventItem     `json:"items,omitempty"`
	At       time.Time       `json:"at"`
}

const (
	UnseenOrdersKey = "orders:unseen"
	// ProductNamesKey maps product id to the last name seen in an order.
	ProductNamesKey = "analytics:products"
)

// DailySalesKey names the per-branch sorted set of units sold on a day.
func DailySalesKey(day time.Time, branchID string) string {
	return "analytics:daily:" + day.Format("2006-01-02") + ":" + branchID
}

// DailyRevenueKey names the per-branch revenue counter for a day.
func DailyRevenueKey(day time.Time, branchID string) string {
	return "analytics:revenue:" + day.Format("2006-01-02") + ":" + branchID
}
