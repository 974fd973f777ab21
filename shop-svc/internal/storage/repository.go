package storage

import (
	"context"
	"fmt"

	"restaurant-storefront/shop-svc/internal/domain"

	"go.uber.org/zap"
)

const (
	KeyOrders      = "orders"
	KeyHistory     = "order_history"
	KeyCustomers   = "customers"
	KeyCategories  = "categories"
	KeyProducts    = "products"
	KeyExtraGroups = "extra_groups"
	KeyBranches    = "branches"
	KeyStock       = "stock"
	KeyGallery     = "gallery"
)

func ScheduleKey(branchID string) string { return "schedule:" + branchID }
func SettingsKey(section string) string  { return "settings:" + section }
func SessionKey(id string) string        { return "checkout:" + id }

// BlobRepository maps domain collections onto versioned blobs in a Store.
// Unreadable blobs fall back to the seed data.
type BlobRepository struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewBlobRepository(store Store, logger *zap.SugaredLogger) *BlobRepository {
	return &BlobRepository{store: store, logger: logger}
}

func load[T any](ctx context.Context, r *BlobRepository, key string, fallback func() T) (T, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return fallback(), nil
	}

	var value T
	version, err := decode(raw, &value)
	if err != nil {
		r.logger.Warnw("malformed blob, using defaults", "key", key, "error", err)
		return fallback(), nil
	}
	if version < CurrentVersion {
		r.logger.Debugw("read legacy blob", "key", key, "version", version)
	}
	return value, nil
}

func save(ctx context.Context, r *BlobRepository, key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func empty[T any]() []T { return []T{} }

func (r *BlobRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return load(ctx, r, KeyOrders, empty[domain.Order])
}

func (r *BlobRepository) SaveOrders(ctx context.Context, orders []domain.Order) error {
	return save(ctx, r, KeyOrders, orders)
}

func (r *BlobRepository) ListHistory(ctx context.Context) ([]domain.StatusTransition, error) {
	return load(ctx, r, KeyHistory, empty[domain.StatusTransition])
}

func (r *BlobRepository) SaveHistory(ctx context.Context, history []domain.StatusTransition) error {
	return save(ctx, r, KeyHistory, history)
}

func (r *BlobRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return load(ctx, r, KeyCustomers, empty[domain.Customer])
}

func (r *BlobRepository) SaveCustomers(ctx context.Context, customers []domain.Customer) error {
	return save(ctx, r, KeyCustomers, customers)
}

func (r *BlobRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return load(ctx, r, KeyBranches, SeedBranches)
}

func (r *BlobRepository) SaveBranches(ctx context.Context, branches []domain.Branch) error {
	return save(ctx, r, KeyBranches, branches)
}

func (r *BlobRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return load(ctx, r, KeyCategories, SeedCategories)
}

func (r *BlobRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	return save(ctx, r, KeyCategories, categories)
}

func (r *BlobRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return load(ctx, r, KeyProducts, SeedProducts)
}

func (r *BlobRepository) SaveProducts(ctx context.Context, products []domain.Product) error {
	return save(ctx, r, KeyProducts, products)
}

func (r *BlobRepository) ListExtraGroups(ctx context.Context) ([]domain.ExtraGroup, error) {
	return load(ctx, r, KeyExtraGroups, SeedExtraGroups)
}

func (r *BlobRepository) SaveExtraGroups(ctx context.Context, groups []domain.ExtraGroup) error {
	return save(ctx, r, KeyExtraGroups, groups)
}

func (r *BlobRepository) ListStock(ctx context.Context) ([]domain.StockItem, error) {
	return load(ctx, r, KeyStock, SeedStock)
}

func (r *BlobRepository) SaveStock(ctx context.Context, stock []domain.StockItem) error {
	return save(ctx, r, KeyStock, stock)
}

// GetSchedule falls back to the default week when the stored one is missing or invalid.
func (r *BlobRepository) GetSchedule(ctx context.Context, branchID string) (domain.WeekSchedule, error) {
	fallback := func() domain.WeekSchedule { return domain.DefaultWeekSchedule(branchID) }
	schedule, err := load(ctx, r, ScheduleKey(branchID), fallback)
	if err != nil {
		return domain.WeekSchedule{}, err
	}
	if err := schedule.Validate(); err != nil {
		r.logger.Warnw("stored schedule is invalid, using defaults", "branch_id", branchID, "error", err)
		return fallback(), nil
	}
	schedule.BranchID = branchID
	return schedule, nil
}

func (r *BlobRepository) SaveSchedule(ctx context.Context, schedule domain.WeekSchedule) error {
	return save(ctx, r, ScheduleKey(schedule.BranchID), schedule)
}

func (r *BlobRepository) GetSettings(ctx context.Context) (domain.Settings, error) {
	defaults := SeedSettings()
	settings := defaults
	var err error

	if settings.General, err = load(ctx, r, SettingsKey(domain.SettingsGeneral), func() domain.GeneralSettings { return defaults.General }); err != nil {
		return domain.Settings{}, err
	}
	if settings.Appearance, err = load(ctx, r, SettingsKey(domain.SettingsAppearance), func() domain.AppearanceSettings { return defaults.Appearance }); err != nil {
		return domain.Settings{}, err
	}
	if settings.Notification, err = load(ctx, r, SettingsKey(domain.SettingsNotification), func() domain.NotificationSettings { return defaults.Notification }); err != nil {
		return domain.Settings{}, err
	}
	if settings.Payment, err = load(ctx, r, SettingsKey(domain.SettingsPayment), func() domain.PaymentSettings { return defaults.Payment }); err != nil {
		return domain.Settings{}, err
	}
	if settings.WhatsApp, err = load(ctx, r, SettingsKey(domain.SettingsWhatsApp), func() domain.WhatsAppSettings { return defaults.WhatsApp }); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// SaveSettingsSection stores one section; value must be the section's struct.
func (r *BlobRepository) SaveSettingsSection(ctx context.Context, section string, value any) error {
	return save(ctx, r, SettingsKey(section), value)
}

func (r *BlobRepository) ListGallery(ctx context.Context) ([]domain.GalleryImage, error) {
	return load(ctx, r, KeyGallery, empty[domain.GalleryImage])
}

func (r *BlobRepository) SaveGallery(ctx context.Context, images []domain.GalleryImage) error {
	return save(ctx, r, KeyGallery, images)
}

func (r *BlobRepository) GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	session, err := load(ctx, r, SessionKey(id), func() *domain.CheckoutSession { return nil })
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (r *BlobRepository) SaveSession(ctx context.Context, session *domain.CheckoutSession) error {
	return save(ctx, r, SessionKey(session.ID), session)
}
