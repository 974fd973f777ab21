package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"restaurant-storefront/shop-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// CustomerService keeps one record per email, built from placed orders.
type CustomerService struct {
	repo CustomerRepository
	ids  IDGenerator
	mu   sync.Mutex
}

func NewCustomerService(repo CustomerRepository, ids IDGenerator) *CustomerService {
	return &CustomerService{repo: repo, ids: ids}
}

func (s *CustomerService) List(ctx context.Context, search string) ([]domain.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	result := []domain.Customer{}
	for _, c := range customers {
		if needle == "" ||
			strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) ||
			strings.Contains(c.Phone, needle) {
			result = append(result, c)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].LastOrderAt.After(result[j].LastOrderAt) })
	return result, nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	i := findIndex(customers, func(c domain.Customer) bool { return c.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return &customers[i], nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return err
	}
	customers, ok := remove(customers, func(c domain.Customer) bool { return c.ID == id })
	if !ok {
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return s.repo.SaveCustomers(ctx, customers)
}

// Record upserts the order's customer; contact details follow the latest order.
func (s *CustomerService) Record(ctx context.Context, order domain.Order) error {
	email := strings.ToLower(strings.TrimSpace(order.Customer.Email))
	if email == "" {
		return domain.NewValidationError("email", "email is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return err
	}
	i := findIndex(customers, func(c domain.Customer) bool { return strings.ToLower(c.Email) == email })
	if i < 0 {
		customers = append(customers, domain.Customer{ID: s.ids(), Email: email, TotalSpent: decimal.Zero})
		i = len(customers) - 1
	}
	c := &customers[i]
	c.Name = order.Customer.Name
	c.Phone = order.Customer.Phone
	c.Address = order.Customer.Address
	c.OrderCount++
	c.TotalSpent = c.TotalSpent.Add(order.Total)
	if order.CreatedAt.After(c.LastOrderAt) {
		c.LastOrderAt = order.CreatedAt
	}
	return s.repo.SaveCustomers(ctx, customers)
}

var _ CustomerServiceInterface = (*CustomerService)(nil)
