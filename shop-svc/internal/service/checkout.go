package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"restaurant-storefront/shop-svc/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrStepBlocked     = errors.New("checkout step blocked")
	ErrPaymentRejected = errors.New("payment rejected")
)

type AddItemRequest struct {
	ProductID string                  `json:"product_id"`
	Quantity  int                     `json:"quantity"`
	Extras    []domain.ExtraSelection `json:"extras"`
}

// StaticCodeVerifier accepts a single configured code.
type StaticCodeVerifier struct {
	Code string
}

func (v StaticCodeVerifier) Verify(code string) bool {
	return v.Code != "" && strings.TrimSpace(code) == v.Code
}

type CheckoutService struct {
	sessions  SessionRepository
	catalog   CatalogServiceInterface
	orders    OrderServiceInterface
	customers CustomerServiceInterface
	settings  SettingsRepository
	verifier  PaymentVerifier
	notifier  Notifier
	clock     Clock
	ids       IDGenerator
	logger    *zap.SugaredLogger
	mu        sync.Mutex
}

type CheckoutDeps struct {
	Sessions  SessionRepository
	Catalog   CatalogServiceInterface
	Orders    OrderServiceInterface
	Customers CustomerServiceInterface
	Settings  SettingsRepository
	Verifier  PaymentVerifier
	Notifier  Notifier
	Clock     Clock
	IDs       IDGenerator
	Logger    *zap.SugaredLogger
}

func NewCheckoutService(deps CheckoutDeps) *CheckoutService {
	return &CheckoutService{
		sessions:  deps.Sessions,
		catalog:   deps.Catalog,
		orders:    deps.Orders,
		customers: deps.Customers,
		settings:  deps.Settings,
		verifier:  deps.Verifier,
		notifier:  deps.Notifier,
		clock:     deps.Clock,
		ids:       deps.IDs,
		logger:    deps.Logger,
	}
}

func (s *CheckoutService) Start(ctx context.Context) (*domain.CheckoutSession, error) {
	now := s.clock()
	session := &domain.CheckoutSession{
		ID:        s.ids(),
		Step:      domain.StepCart,
		Cart:      domain.Cart{Items: []domain.CartItem{}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	return s.sessions.GetSession(ctx, id)
}

// update loads the session, applies change and saves it.
func (s *CheckoutService) update(ctx context.Context, id string, change func(*domain.CheckoutSession) error) (*domain.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.clock()
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func requireStep(session *domain.CheckoutSession, step domain.CheckoutStep) error {
	if session.Step != step {
		return fmt.Errorf("%w: session is at %s, not %s", ErrStepBlocked, session.Step, step)
	}
	return nil
}

// SelectBranch switches the cart to another branch and re-clamps every line
// to that branch's stock.
func (s *CheckoutService) SelectBranch(ctx context.Context, id, branchID string) (*domain.CheckoutSession, error) {
	return s.update(ctx, id, func(session *domain.CheckoutSession) error {
		if err := requireStep(session, domain.StepCart); err != nil {
			return err
		}
		if _, err := s.catalog.GetBranch(ctx, branchID); err != nil {
			return err
		}
		if session.BranchID == branchID {
			return nil
		}
		session.BranchID = branchID

		stock, err := s.catalog.ListStock(ctx, branchID)
		if err != nil {
			return err
		}
		used := make(map[string]int)
		kept := make([]domain.CartItem, 0, len(session.Cart.Items))
		for _, item := range session.Cart.Items {
			available := domain.AvailableQuantity(stock, item.Product.ID, branchID) - used[item.Product.ID]
			item.Quantity = domain.Clamp(item.Quantity, available)
			if item.Quantity <= 0 {
				continue
			}
			used[item.Product.ID] += item.Quantity
			kept = append(kept, item)
		}
		session.Cart.Items = kept
		return nil
	})
}

// AddItem validates extras and clamps the quantity to what the branch still
// has beyond what is already in the cart. A clamp to zero is not an error.
func (s *CheckoutService) AddItem(ctx context.Context, id string, req AddItemRequest) (*domain.CheckoutSession, error) {
	return s.update(ctx, id, func(session *domain.CheckoutSession) error {
		if err := requireStep(session, domain.StepCart); err != nil {
			return err
		}
		if session.BranchID == "" {
			return domain.NewValidationError("branch_id", "select a branch first")
		}
		if req.Quantity <= 0 {
			return domain.NewValidationError("quantity", "quantity must be positive")
		}
		product, err := s.catalog.GetProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}
		groups, err := s.catalog.ListExtraGroups(ctx)
		if err != nil {
			return err
		}
		extras, err := domain.ResolveExtras(*product, groups, req.Extras)
		if err != nil {
			return err
		}
		available, err := s.catalog.Available(ctx, product.ID, session.BranchID)
		if err != nil {
			return err
		}
		quantity := domain.Clamp(req.Quantity, available-session.Cart.QuantityOf(product.ID))
		if quantity <= 0 {
			s.logger.Infow("add to cart clamped to zero", "session_id", id, "product_id", product.ID, "branch_id", session.BranchID)
			return nil
		}
		session.Cart.Add(*product, quantity, extras)
		return nil
	})
}

func (s *CheckoutService) RemoveItem(ctx context.Context, id, productID string, extras []domain.ExtraSelection) (*domain.CheckoutSession, error) {
	return s.update(ctx, id, func(session *domain.CheckoutSession) error {
		if err := requireStep(session, domain.StepCart); err != nil {
			return err
		}
		selected := make([]domain.SelectedExtra, 0, len(extras))
		for _, e := range extras {
			selected = append(selected, domain.SelectedExtra{ExtraID: e.ExtraID, Quantity: e.Quantity})
		}
		session.Cart.Remove(productID, selected)
		return nil
	})
}

// UpdateItem sets a line's quantity; other lines of the same product count
// against the stock available to it.
func (s *CheckoutService) UpdateItem(ctx context.Context, id string, index, quantity int) (*domain.CheckoutSession, error) {
	return s.update(ctx, id, func(session *domain.CheckoutSession) error {
		if err := requireStep(session, domain.StepCart); err != nil {
			return err
		}
		if index < 0 || index >= len(session.Cart.Items) {
			return fmt.Errorf("cart line %d: %w", index, domain.ErrNotFound)
		}
		line := session.Cart.Items[index]
		available, err := s.catalog.Available(ctx, line.Product.ID, session.BranchID)
		if err != nil {
			return err
		}
		others := session.Cart.QuantityOf(line.Product.ID) - line.Quantity
		session.Cart.UpdateQuantity(index, quantity, available-others)
		return nil
	})
}

func (s *CheckoutService) SetCustomer(ctx context.Context, id string, info domain.CustomerInfo) (*domain.CheckoutSession, error) {
	return s.update(ctx, id, func(session *domain.CheckoutSession) error {
		if session.Step != domain.StepCustomer && session.Step != domain.StepPayment {
			return fmt.Errorf("%w: customer details are edited at the customer step", ErrStepBlocked)
		}
		info.Email = strings.TrimSpace(info.Email)
		info.Phone = strings.TrimSpace(info.Phone)
		session.Customer = info
		return nil
	})
}

// Next advances the wizard when the current step's gate passes. The code is
// only read at the payment step.
func (s *CheckoutService) Next(ctx context.Context, id string, verificationCode string) (*domain.CheckoutSession, error) {
	return s.update(ctx, id, func(session *domain.CheckoutSession) error {
		switch session.Step {
		case domain.StepCart:
			if err := s.cartGate(ctx, session); err != nil {
				return err
			}
			session.Step = domain.StepCustomer
		case domain.StepCustomer:
			if err := session.Customer.Validate(); err != nil {
				return err
			}
			session.Step = domain.StepPayment
		case domain.StepPayment:
			if !s.verifier.Verify(verificationCode) {
				s.logger.Warnw("payment verification failed", "session_id", id)
				return ErrPaymentRejected
			}
			order, err := s.placeOrder(ctx, session)
			if err != nil {
				return err
			}
			session.OrderID = order.ID
			session.Step = domain.StepConfirmation
		default:
			return fmt.Errorf("%w: checkout already completed", ErrStepBlocked)
		}
		return nil
	})
}

func (s *CheckoutService) cartGate(ctx context.Context, session *domain.CheckoutSession) error {
	if session.Cart.IsEmpty() {
		return fmt.Errorf("%w: cart is empty", ErrStepBlocked)
	}
	if session.BranchID == "" {
		return fmt.Errorf("%w: no branch selected", ErrStepBlocked)
	}
	status, err := s.catalog.BranchStatus(ctx, session.BranchID)
	if err != nil {
		return err
	}
	if status.Open {
		return nil
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if !settings.General.AllowPreorders {
		return fmt.Errorf("%w: branch is closed", ErrStepBlocked)
	}
	return nil
}

func (s *CheckoutService) placeOrder(ctx context.Context, session *domain.CheckoutSession) (*domain.Order, error) {
	if err := session.Customer.Validate(); err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range session.Cart.Items {
		available, err := s.catalog.Available(ctx, item.Product.ID, session.BranchID)
		if err != nil {
			return nil, err
		}
		if session.Cart.QuantityOf(item.Product.ID) > available {
			return nil, fmt.Errorf("%w: %s is no longer available in that quantity", ErrStepBlocked, item.Product.Name)
		}
	}

	now := s.clock()
	items := make([]domain.OrderItem, 0, len(session.Cart.Items))
	for _, item := range session.Cart.Items {
		items = append(items, domain.OrderItem{
			ProductID:  item.Product.ID,
			Name:       item.Product.Name,
			CategoryID: item.Product.CategoryID,
			UnitPrice:  item.UnitPrice(),
			Quantity:   item.Quantity,
			Extras:     item.SelectedExtras,
			LineTotal:  item.LineTotal(),
		})
	}
	subtotal := session.Cart.Total()
	order := domain.Order{
		Customer:      session.Customer,
		BranchID:      session.BranchID,
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   settings.General.DeliveryFee,
		Total:         subtotal.Add(settings.General.DeliveryFee),
		Status:        domain.StatusPending,
		PaymentMethod: settings.Payment.Method,
		PaymentStatus: domain.PaymentPaid,
		IsNew:         true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.place(ctx, &order); err != nil {
		return nil, err
	}
	if err := s.catalog.ConsumeStock(ctx, order.BranchID, order.Items); err != nil {
		s.logger.Errorw("failed to consume stock", "order_id", order.ID, "error", err)
	}
	if err := s.customers.Record(ctx, order); err != nil {
		s.logger.Errorw("failed to record customer", "order_id", order.ID, "error", err)
	}
	if err := s.notifier.Notify(ctx, domain.NewOrderEvent(domain.EventOrderCreated, order, now)); err != nil {
		s.logger.Errorw("failed to publish order event", "order_id", order.ID, "error", err)
	}
	return &order, nil
}

const orderIDAttempts = 3

// place assigns a fresh id and stores the order, drawing a new id when one
// is already taken.
func (s *CheckoutService) place(ctx context.Context, order *domain.Order) error {
	var err error
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		order.ID = newOrderID(s.ids())
		err = s.orders.Place(ctx, *order)
		if !errors.Is(err, domain.ErrDuplicateOrder) {
			return err
		}
		s.logger.Warnw("order id collision, retrying", "order_id", order.ID)
	}
	return err
}

// newOrderID keeps 12 hex digits of the generated id.
func newOrderID(raw string) string {
	raw = strings.ReplaceAll(raw, "-", "")
	if len(raw) > 12 {
		raw = raw[:12]
	}
	return "ORD-" + strings.ToUpper(raw)
}

// Back is allowed from the customer and payment steps only.
func (s *CheckoutService) Back(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	return s.update(ctx, id, func(session *domain.CheckoutSession) error {
		switch session.Step {
		case domain.StepCustomer:
			session.Step = domain.StepCart
		case domain.StepPayment:
			session.Step = domain.StepCustomer
		default:
			return fmt.Errorf("%w: cannot go back from %s", ErrStepBlocked, session.Step)
		}
		return nil
	})
}

var (
	_ CheckoutServiceInterface = (*CheckoutService)(nil)
	_ PaymentVerifier          = StaticCodeVerifier{}
)
