package service

import (
	"context"
	"time"

	"restaurant-storefront/shop-svc/internal/domain"
	"restaurant-storefront/shop-svc/internal/storage"
)

type CatalogRepository interface {
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	SaveBranches(ctx context.Context, branches []domain.Branch) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategories(ctx context.Context, categories []domain.Category) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SaveProducts(ctx context.Context, products []domain.Product) error
	ListExtraGroups(ctx context.Context) ([]domain.ExtraGroup, error)
	SaveExtraGroups(ctx context.Context, groups []domain.ExtraGroup) error
	ListStock(ctx context.Context) ([]domain.StockItem, error)
	SaveStock(ctx context.Context, stock []domain.StockItem) error
	GetSchedule(ctx context.Context, branchID string) (domain.WeekSchedule, error)
	SaveSchedule(ctx context.Context, schedule domain.WeekSchedule) error
}

type OrderRepository interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	SaveOrders(ctx context.Context, orders []domain.Order) error
	ListHistory(ctx context.Context) ([]domain.StatusTransition, error)
	SaveHistory(ctx context.Context, history []domain.StatusTransition) error
}

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	SaveCustomers(ctx context.Context, customers []domain.Customer) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	SaveSettingsSection(ctx context.Context, section string, value any) error
	ListGallery(ctx context.Context) ([]domain.GalleryImage, error)
	SaveGallery(ctx context.Context, images []domain.GalleryImage) error
}

type SessionRepository interface {
	GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error)
	SaveSession(ctx context.Context, session *domain.CheckoutSession) error
}

// Notifier receives order events; presentation is someone else's job.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}

// PaymentVerifier stands in for a payment provider.
type PaymentVerifier interface {
	Verify(code string) bool
}

type Clock func() time.Time

type IDGenerator func() string

type CatalogServiceInterface interface {
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	GetBranch(ctx context.Context, id string) (*domain.Branch, error)
	SaveBranch(ctx context.Context, branch *domain.Branch) error
	DeleteBranch(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListProducts(ctx context.Context, categoryID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SaveProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListExtraGroups(ctx context.Context) ([]domain.ExtraGroup, error)
	SaveExtraGroup(ctx context.Context, group *domain.ExtraGroup) error
	DeleteExtraGroup(ctx context.Context, id string) error
	ListStock(ctx context.Context, branchID string) ([]domain.StockItem, error)
	SetStock(ctx context.Context, productID, branchID string, quantity int) (*domain.StockItem, error)
	Available(ctx context.Context, productID, branchID string) (int, error)
	ConsumeStock(ctx context.Context, branchID string, items []domain.OrderItem) error
	GetSchedule(ctx context.Context, branchID string) (domain.WeekSchedule, error)
	SaveSchedule(ctx context.Context, schedule domain.WeekSchedule) error
	BranchStatus(ctx context.Context, branchID string) (*BranchStatus, error)
}

type OrderServiceInterface interface {
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Place(ctx context.Context, order domain.Order) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, *domain.StatusTransition, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus) (*domain.Order, *domain.StatusTransition, error)
	MarkSeen(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]domain.StatusTransition, error)
}

type CheckoutServiceInterface interface {
	Start(ctx context.Context) (*domain.CheckoutSession, error)
	Get(ctx context.Context, id string) (*domain.CheckoutSession, error)
	SelectBranch(ctx context.Context, id, branchID string) (*domain.CheckoutSession, error)
	AddItem(ctx context.Context, id string, req AddItemRequest) (*domain.CheckoutSession, error)
	RemoveItem(ctx context.Context, id, productID string, extras []domain.ExtraSelection) (*domain.CheckoutSession, error)
	UpdateItem(ctx context.Context, id string, index, quantity int) (*domain.CheckoutSession, error)
	SetCustomer(ctx context.Context, id string, info domain.CustomerInfo) (*domain.CheckoutSession, error)
	Next(ctx context.Context, id string, verificationCode string) (*domain.CheckoutSession, error)
	Back(ctx context.Context, id string) (*domain.CheckoutSession, error)
}

type CustomerServiceInterface interface {
	List(ctx context.Context, search string) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	Record(ctx context.Context, order domain.Order) error
}

type SettingsServiceInterface interface {
	Get(ctx context.Context) (domain.Settings, error)
	UpdateSection(ctx context.Context, section string, payload []byte) (domain.Settings, error)
	ListImages(ctx context.Context) ([]domain.GalleryImage, error)
	AddImage(ctx context.Context, name, dataURL string) (*domain.GalleryImage, error)
	DeleteImage(ctx context.Context, id string) error
}

var (
	_ CatalogRepository  = (*storage.BlobRepository)(nil)
	_ OrderRepository    = (*storage.BlobRepository)(nil)
	_ CustomerRepository = (*storage.BlobRepository)(nil)
	_ SettingsRepository = (*storage.BlobRepository)(nil)
	_ SessionRepository  = (*storage.BlobRepository)(nil)
	_ Notifier           = (*storage.KafkaNotifier)(nil)
)
