package service

import (
	"sort"
	"strings"
	"time"

	"restaurant-storefront/analytics-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// counted reports whether an order contributes to sales figures.
func counted(order domain.Order, r domain.Range) bool {
	return order.Status != domain.StatusCancelled && r.Contains(order.CreatedAt)
}

func Summarize(orders []domain.Order, r domain.Range) domain.Summary {
	summary := domain.Summary{Revenue: decimal.Zero, AverageTicket: decimal.Zero}
	customers := make(map[string]struct{})
	for _, order := range orders {
		if !counted(order, r) {
			continue
		}
		summary.Orders++
		summary.Revenue = summary.Revenue.Add(order.Total)
		if email := strings.ToLower(strings.TrimSpace(order.Customer.Email)); email != "" {
			customers[email] = struct{}{}
		}
	}
	summary.Customers = len(customers)
	if summary.Orders > 0 {
		summary.AverageTicket = summary.Revenue.Div(decimal.NewFromInt(int64(summary.Orders))).Round(2)
	}
	return summary
}

// SalesByDate returns one point per calendar day of the range, empty days included.
func SalesByDate(orders []domain.Order, r domain.Range) []domain.DatePoint {
	loc := r.From.Location()
	index := make(map[string]int)
	points := []domain.DatePoint{}
	start := time.Date(r.From.Year(), r.From.Month(), r.From.Day(), 0, 0, 0, 0, loc)
	for day := start; day.Before(r.To); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		index[key] = len(points)
		points = append(points, domain.DatePoint{Date: key, Revenue: decimal.Zero})
	}

	for _, order := range orders {
		if !counted(order, r) {
			continue
		}
		i, ok := index[order.CreatedAt.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		points[i].Orders++
		points[i].Revenue = points[i].Revenue.Add(order.Total)
	}
	return points
}

func sortGroups(groups map[string]*domain.GroupPoint) []domain.GroupPoint {
	result := make([]domain.GroupPoint, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Revenue.Equal(result[j].Revenue) {
			return result[i].Revenue.GreaterThan(result[j].Revenue)
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// SalesByCategory sums line totals; an order touching two categories counts once in each.
func SalesByCategory(orders []domain.Order, r domain.Range) []domain.GroupPoint {
	groups := make(map[string]*domain.GroupPoint)
	for _, order := range orders {
		if !counted(order, r) {
			continue
		}
		seen := make(map[string]bool)
		for _, item := range order.Items {
			g, ok := groups[item.CategoryID]
			if !ok {
				g = &domain.GroupPoint{Key: item.CategoryID, Revenue: decimal.Zero}
				groups[item.CategoryID] = g
			}
			if !seen[item.CategoryID] {
				seen[item.CategoryID] = true
				g.Orders++
			}
			g.Quantity += item.Quantity
			g.Revenue = g.Revenue.Add(item.LineTotal)
		}
	}
	return sortGroups(groups)
}

func SalesByBranch(orders []domain.Order, r domain.Range) []domain.GroupPoint {
	groups := make(map[string]*domain.GroupPoint)
	for _, order := range orders {
		if !counted(order, r) {
			continue
		}
		g, ok := groups[order.BranchID]
		if !ok {
			g = &domain.GroupPoint{Key: order.BranchID, Revenue: decimal.Zero}
			groups[order.BranchID] = g
		}
		g.Orders++
		for _, item := range order.Items {
			g.Quantity += item.Quantity
		}
		g.Revenue = g.Revenue.Add(order.Total)
	}
	return sortGroups(groups)
}

// OrdersByHour always returns 24 buckets, hours taken in the range's location.
func OrdersByHour(orders []domain.Order, r domain.Range) []domain.HourPoint {
	points := make([]domain.HourPoint, 24)
	for h := range points {
		points[h].Hour = h
	}
	for _, order := range orders {
		if counted(order, r) {
			points[order.CreatedAt.In(r.From.Location()).Hour()].Orders++
		}
	}
	return points
}

func TopProducts(orders []domain.Order, r domain.Range, limit int) []domain.ProductRank {
	ranks := make(map[string]*domain.ProductRank)
	for _, order := range orders {
		if !counted(order, r) {
			continue
		}
		for _, item := range order.Items {
			p, ok := ranks[item.ProductID]
			if !ok {
				p = &domain.ProductRank{ProductID: item.ProductID, Revenue: decimal.Zero}
				ranks[item.ProductID] = p
			}
			p.Name = item.Name
			p.Quantity += item.Quantity
			p.Revenue = p.Revenue.Add(item.LineTotal)
		}
	}

	result := make([]domain.ProductRank, 0, len(ranks))
	for _, p := range ranks {
		result = append(result, *p)
	}
	sortRanks(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func sortRanks(ranks []domain.ProductRank) {
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Quantity != ranks[j].Quantity {
			return ranks[i].Quantity > ranks[j].Quantity
		}
		if !ranks[i].Revenue.Equal(ranks[j].Revenue) {
			return ranks[i].Revenue.GreaterThan(ranks[j].Revenue)
		}
		return ranks[i].ProductID < ranks[j].ProductID
	})
}

// StatusDistribution counts every order in range, cancelled ones included.
func StatusDistribution(orders []domain.Order, r domain.Range) map[string]int {
	counts := make(map[string]int)
	for _, order := range orders {
		if r.Contains(order.CreatedAt) {
			counts[order.Status]++
		}
	}
	return counts
}
