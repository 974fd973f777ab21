package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"restaurant-storefront/shop-svc/internal/domain"

	"go.uber.org/zap"
)

type BranchStatus struct {
	BranchID    string     `json:"branch_id"`
	Open        bool       `json:"open"`
	NextOpening *time.Time `json:"next_opening,omitempty"`
}

type CatalogService struct {
	repo   CatalogRepository
	ids    IDGenerator
	clock  Clock
	logger *zap.SugaredLogger
	mu     sync.Mutex
}

func NewCatalogService(repo CatalogRepository, ids IDGenerator, clock Clock, logger *zap.SugaredLogger) *CatalogService {
	return &CatalogService{repo: repo, ids: ids, clock: clock, logger: logger}
}

func findIndex[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, field+" is required")
	}
	return nil
}

func (s *CatalogService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.repo.ListBranches(ctx)
}

func (s *CatalogService) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	i := findIndex(branches, func(b domain.Branch) bool { return b.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("branch %s: %w", id, domain.ErrNotFound)
	}
	return &branches[i], nil
}

// SaveBranch creates the branch when it has no id, otherwise replaces it.
func (s *CatalogService) SaveBranch(ctx context.Context, branch *domain.Branch) error {
	if err := required("name", branch.Name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return err
	}
	branches, err = upsert(branches, branch, &branch.ID, s.ids, func(b domain.Branch) string { return b.ID })
	if err != nil {
		return err
	}
	return s.repo.SaveBranches(ctx, branches)
}

func (s *CatalogService) DeleteBranch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return err
	}
	branches, ok := remove(branches, func(b domain.Branch) bool { return b.ID == id })
	if !ok {
		return fmt.Errorf("branch %s: %w", id, domain.ErrNotFound)
	}
	return s.repo.SaveBranches(ctx, branches)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Position < categories[j].Position })
	return categories, nil
}

func (s *CatalogService) SaveCategory(ctx context.Context, category *domain.Category) error {
	if err := required("name", category.Name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	categories, err = upsert(categories, category, &category.ID, s.ids, func(c domain.Category) string { return c.ID })
	if err != nil {
		return err
	}
	return s.repo.SaveCategories(ctx, categories)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	categories, ok := remove(categories, func(c domain.Category) bool { return c.ID == id })
	if !ok {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	return s.repo.SaveCategories(ctx, categories)
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		return products, nil
	}
	filtered := []domain.Product{}
	for _, p := range products {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	i := findIndex(products, func(p domain.Product) bool { return p.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return &products[i], nil
}

func (s *CatalogService) SaveProduct(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	if product.Extras == nil {
		product.Extras = []domain.Extra{}
	}
	if product.ExtraGroupIDs == nil {
		product.ExtraGroupIDs = []string{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	products, err = upsert(products, product, &product.ID, s.ids, func(p domain.Product) string { return p.ID })
	if err != nil {
		return err
	}
	return s.repo.SaveProducts(ctx, products)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	products, ok := remove(products, func(p domain.Product) bool { return p.ID == id })
	if !ok {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return s.repo.SaveProducts(ctx, products)
}

func (s *CatalogService) ListExtraGroups(ctx context.Context) ([]domain.ExtraGroup, error) {
	return s.repo.ListExtraGroups(ctx)
}

func (s *CatalogService) SaveExtraGroup(ctx context.Context, group *domain.ExtraGroup) error {
	if err := required("name", group.Name); err != nil {
		return err
	}
	for _, e := range group.Extras {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, err := s.repo.ListExtraGroups(ctx)
	if err != nil {
		return err
	}
	groups, err = upsert(groups, group, &group.ID, s.ids, func(g domain.ExtraGroup) string { return g.ID })
	if err != nil {
		return err
	}
	return s.repo.SaveExtraGroups(ctx, groups)
}

func (s *CatalogService) DeleteExtraGroup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, err := s.repo.ListExtraGroups(ctx)
	if err != nil {
		return err
	}
	groups, ok := remove(groups, func(g domain.ExtraGroup) bool { return g.ID == id })
	if !ok {
		return fmt.Errorf("extra group %s: %w", id, domain.ErrNotFound)
	}
	return s.repo.SaveExtraGroups(ctx, groups)
}

func (s *CatalogService) ListStock(ctx context.Context, branchID string) ([]domain.StockItem, error) {
	stock, err := s.repo.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	if branchID == "" {
		return stock, nil
	}
	filtered := []domain.StockItem{}
	for _, item := range stock {
		if item.BranchID == branchID {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// SetStock upserts the (product, branch) record.
func (s *CatalogService) SetStock(ctx context.Context, productID, branchID string, quantity int) (*domain.StockItem, error) {
	if quantity < 0 {
		return nil, domain.NewValidationError("quantity", "quantity must not be negative")
	}
	if err := required("product_id", productID); err != nil {
		return nil, err
	}
	if err := required("branch_id", branchID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.repo.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	i := findIndex(stock, func(item domain.StockItem) bool {
		return item.ProductID == productID && item.BranchID == branchID
	})
	if i < 0 {
		stock = append(stock, domain.StockItem{ID: s.ids(), ProductID: productID, BranchID: branchID})
		i = len(stock) - 1
	}
	stock[i].Quantity = quantity
	if err := s.repo.SaveStock(ctx, stock); err != nil {
		return nil, err
	}
	item := stock[i]
	return &item, nil
}

func (s *CatalogService) Available(ctx context.Context, productID, branchID string) (int, error) {
	stock, err := s.repo.ListStock(ctx)
	if err != nil {
		return 0, err
	}
	return domain.AvailableQuantity(stock, productID, branchID), nil
}

// ConsumeStock decrements stock for placed items, never below zero.
func (s *CatalogService) ConsumeStock(ctx context.Context, branchID string, items []domain.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.repo.ListStock(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		i := findIndex(stock, func(st domain.StockItem) bool {
			return st.ProductID == item.ProductID && st.BranchID == branchID
		})
		if i < 0 {
			continue
		}
		stock[i].Quantity -= item.Quantity
		if stock[i].Quantity < 0 {
			s.logger.Warnw("stock went negative, clamping", "product_id", item.ProductID, "branch_id", branchID)
			stock[i].Quantity = 0
		}
	}
	return s.repo.SaveStock(ctx, stock)
}

func (s *CatalogService) GetSchedule(ctx context.Context, branchID string) (domain.WeekSchedule, error) {
	if _, err := s.GetBranch(ctx, branchID); err != nil {
		return domain.WeekSchedule{}, err
	}
	return s.repo.GetSchedule(ctx, branchID)
}

func (s *CatalogService) SaveSchedule(ctx context.Context, schedule domain.WeekSchedule) error {
	if _, err := s.GetBranch(ctx, schedule.BranchID); err != nil {
		return err
	}
	if err := schedule.Validate(); err != nil {
		return domain.NewValidationError("days", err.Error())
	}
	return s.repo.SaveSchedule(ctx, schedule)
}

func (s *CatalogService) BranchStatus(ctx context.Context, branchID string) (*BranchStatus, error) {
	schedule, err := s.GetSchedule(ctx, branchID)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	status := &BranchStatus{BranchID: branchID, Open: domain.IsOpen(schedule, now)}
	if !status.Open {
		if next, ok := domain.NextOpening(schedule, now); ok {
			status.NextOpening = &next
		}
	}
	return status, nil
}

// upsert assigns a fresh id when *id is empty and appends; otherwise it
// replaces the item with that id.
func upsert[T any](items []T, item *T, id *string, ids IDGenerator, idOf func(T) string) ([]T, error) {
	if *id == "" {
		*id = ids()
		return append(items, *item), nil
	}
	i := findIndex(items, func(existing T) bool { return idOf(existing) == *id })
	if i < 0 {
		return append(items, *item), nil
	}
	items[i] = *item
	return items, nil
}

func remove[T any](items []T, match func(T) bool) ([]T, bool) {
	i := findIndex(items, match)
	if i < 0 {
		return items, false
	}
	return append(items[:i], items[i+1:]...), true
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
