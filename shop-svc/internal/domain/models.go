package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Branch struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type Extra struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Min      int             `json:"min"`
	Max      int             `json:"max"`
	Required bool            `json:"required"`
}

type ExtraGroup struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Extras []Extra `json:"extras"`
}

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	CategoryID    string          `json:"category_id"`
	Extras        []Extra         `json:"extras"`
	ExtraGroupIDs []string        `json:"extra_group_ids"`
}

// StockItem is keyed by (ProductID, BranchID).
type StockItem struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	BranchID  string `json:"branch_id"`
	Quantity  int    `json:"quantity"`
}

type SelectedExtra struct {
	ExtraID  string          `json:"extra_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type CartItem struct {
	Product        Product         `json:"product"`
	Quantity       int             `json:"quantity"`
	SelectedExtras []SelectedExtra `json:"selected_extras"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes,omitempty"`
}

type OrderItem struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Extras     []SelectedExtra `json:"extras"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type Order struct {
	ID            string          `json:"id"`
	Customer      CustomerInfo    `json:"customer"`
	BranchID      string          `json:"branch_id"`
	Items         []OrderItem     `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	IsNew         bool            `json:"is_new"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Customer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	OrderCount  int             `json:"order_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	LastOrderAt time.Time       `json:"last_order_at"`
}

type GalleryImage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DataURL   string    `json:"data_url"`
	CreatedAt time.Time `json:"created_at"`
}

type GeneralSettings struct {
	StoreName      string          `json:"store_name"`
	Currency       string          `json:"currency"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	AllowPreorders bool            `json:"allow_preorders"`
}

type AppearanceSettings struct {
	PrimaryColor string `json:"primary_color"`
	LogoURL      string `json:"logo_url"`
	BannerText   string `json:"banner_text"`
}

type NotificationSettings struct {
	SoundEnabled        bool `json:"sound_enabled"`
	PollIntervalSeconds int  `json:"poll_interval_seconds"`
}

type PaymentSettings struct {
	CardEnabled bool   `json:"card_enabled"`
	CashEnabled bool   `json:"cash_enabled"`
	Method      string `json:"method"`
}

type WhatsAppSettings struct {
	Enabled  bool   `json:"enabled"`
	Phone    string `json:"phone"`
	Template string `json:"template"`
}

type Settings struct {
	General      GeneralSettings      `json:"general"`
	Appearance   AppearanceSettings   `json:"appearance"`
	Notification NotificationSettings `json:"notification"`
	Payment      PaymentSettings      `json:"payment"`
	WhatsApp     WhatsAppSettings     `json:"whatsapp"`
}

const (
	SettingsGeneral      = "general"
	SettingsAppearance   = "appearance"
	SettingsNotification = "notification"
	SettingsPayment      = "payment"
	SettingsWhatsApp     = "whatsapp"
)

var SettingsSections = []string{
	SettingsGeneral,
	SettingsAppearance,
	SettingsNotification,
	SettingsPayment,
	SettingsWhatsApp,
}
