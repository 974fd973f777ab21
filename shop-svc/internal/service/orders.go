package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"restaurant-storefront/shop-svc/internal/domain"

	"go.uber.org/zap"
)

type OrderFilter struct {
	Status   domain.OrderStatus
	BranchID string
	// Search matches order id, customer name or email, case-insensitively.
	Search string
}

func (f OrderFilter) matches(order domain.Order) bool {
	if f.Status != "" && order.Status != f.Status {
		return false
	}
	if f.BranchID != "" && order.BranchID != f.BranchID {
		return false
	}
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(f.Search)
	for _, field := range []string{order.ID, order.Customer.Name, order.Customer.Email} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

type OrderService struct {
	repo     OrderRepository
	policy   domain.TransitionPolicy
	notifier Notifier
	clock    Clock
	logger   *zap.SugaredLogger
	mu       sync.Mutex
}

func NewOrderService(repo OrderRepository, policy domain.TransitionPolicy, notifier Notifier, clock Clock, logger *zap.SugaredLogger) *OrderService {
	if policy == nil {
		policy = domain.PermissivePolicy{}
	}
	return &OrderService{repo: repo, policy: policy, notifier: notifier, clock: clock, logger: logger}
}

// List returns matching orders, newest first.
func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	result := []domain.Order{}
	for _, order := range orders {
		if filter.matches(order) {
			result = append(result, order)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	i := findIndex(orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return &orders[i], nil
}

// Place appends a fully built order to the log.
func (s *OrderService) Place(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return err
	}
	if findIndex(orders, func(o domain.Order) bool { return o.ID == order.ID }) >= 0 {
		return fmt.Errorf("order %s: %w", order.ID, domain.ErrDuplicateOrder)
	}
	if err := s.repo.SaveOrders(ctx, append(orders, order)); err != nil {
		return err
	}
	s.logger.Infow("order placed", "order_id", order.ID, "branch_id", order.BranchID, "total", order.Total.StringFixed(2))
	return nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, *domain.StatusTransition, error) {
	return s.mutate(ctx, id, func(order *domain.Order) (domain.StatusTransition, error) {
		return domain.Transition(order, status, s.policy, s.clock())
	})
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, *domain.StatusTransition, error) {
	return s.mutate(ctx, id, func(order *domain.Order) (domain.StatusTransition, error) {
		return domain.SetPaymentStatus(order, status, s.clock())
	})
}

// mutate applies change to one order, appends the transition to history and
// publishes it. Notification failures are logged, never returned.
func (s *OrderService) mutate(ctx context.Context, id string, change func(*domain.Order) (domain.StatusTransition, error)) (*domain.Order, *domain.StatusTransition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, nil, err
	}
	i := findIndex(orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		return nil, nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}

	transition, err := change(&orders[i])
	if err != nil {
		return nil, nil, err
	}
	if err := s.repo.SaveOrders(ctx, orders); err != nil {
		return nil, nil, err
	}

	history, err := s.repo.ListHistory(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := s.repo.SaveHistory(ctx, append(history, transition)); err != nil {
		return nil, nil, err
	}

	if transition.Warning != "" {
		s.logger.Warnw("order transition flagged", "order_id", id, "from", transition.From, "to", transition.To, "warning", transition.Warning)
	} else {
		s.logger.Infow("order updated", "order_id", id, "field", transition.Field, "from", transition.From, "to", transition.To)
	}

	order := orders[i]
	if err := s.notifier.Notify(ctx, domain.NewTransitionEvent(order, transition)); err != nil {
		s.logger.Errorw("failed to publish order event", "order_id", id, "error", err)
	}
	return &order, &transition, nil
}

// MarkSeen clears the unseen flag without touching status.
func (s *OrderService) MarkSeen(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return err
	}
	i := findIndex(orders, func(o domain.Order) bool { return o.ID == id })
	if i < 0 {
		return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	if !orders[i].IsNew {
		return nil
	}
	orders[i].IsNew = false
	if err := s.repo.SaveOrders(ctx, orders); err != nil {
		return err
	}

	event := domain.NewOrderEvent(domain.EventOrderSeen, orders[i], s.clock())
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Errorw("failed to publish order event", "order_id", id, "error", err)
	}
	return nil
}

func (s *OrderService) History(ctx context.Context, id string) ([]domain.StatusTransition, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	history, err := s.repo.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	result := []domain.StatusTransition{}
	for _, entry := range history {
		if entry.OrderID == id {
			result = append(result, entry)
		}
	}
	return result, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
