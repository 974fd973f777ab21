package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusCancelled = "cancelled"

type OrderItem struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is the subset of the shop's order record the dashboard reads.
type Order struct {
	ID        string          `json:"id"`
	BranchID  string          `json:"branch_id"`
	Customer  Customer        `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	IsNew     bool            `json:"is_new"`
	CreatedAt time.Time       `json:"created_at"`
}

// Range is half-open: From <= t < To.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

type Summary struct {
	Orders        int             `json:"orders"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	Customers     int             `json:"customers"`
}

type DatePoint struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type GroupPoint struct {
	Key      string          `json:"key"`
	Orders   int             `json:"orders"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type HourPoint struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

type ProductRank struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type Dashboard struct {
	Summary            Summary        `json:"summary"`
	SalesByDate        []DatePoint    `json:"sales_by_date"`
	SalesByCategory    []GroupPoint   `json:"sales_by_category"`
	SalesByBranch      []GroupPoint   `json:"sales_by_branch"`
	OrdersByHour       []HourPoint    `json:"orders_by_hour"`
	TopProducts        []ProductRank  `json:"top_products"`
	StatusDistribution map[string]int `json:"status_distribution"`
}
