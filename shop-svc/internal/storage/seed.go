package storage

import (
	"restaurant-storefront/shop-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultWhatsAppTemplate is used until the restaurant saves its own.
const DefaultWhatsAppTemplate = "Hello {customer-name}! Your order {order-number} at {branch-name} is {status}.\n{items}\nSubtotal: {subtotal}\nDelivery: {delivery-fee}\nTotal: {total}"

func SeedBranches() []domain.Branch {
	return []domain.Branch{
		{ID: "branch-centro", Name: "Centro", Address: "Av. Principal 120"},
		{ID: "branch-norte", Name: "Norte", Address: "Calle 45 #10-32"},
	}
}

func SeedCategories() []domain.Category {
	return []domain.Category{
		{ID: "cat-burgers", Name: "Burgers", Position: 1},
		{ID: "cat-pizzas", Name: "Pizzas", Position: 2},
		{ID: "cat-drinks", Name: "Drinks", Position: 3},
	}
}

func SeedExtraGroups() []domain.ExtraGroup {
	return []domain.ExtraGroup{
		{
			ID:   "grp-sauces",
			Name: "Sauces",
			Extras: []domain.Extra{
				{ID: "ext-bbq", Name: "BBQ sauce", Price: decimal.RequireFromString("0.50"), Min: 0, Max: 2},
				{ID: "ext-garlic", Name: "Garlic sauce", Price: decimal.RequireFromString("0.50"), Min: 0, Max: 2},
			},
		},
	}
}

func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "prod-classic-burger",
			Name:        "Classic burger",
			Description: "Beef patty, cheddar, lettuce and tomato",
			Price:       decimal.RequireFromString("8.90"),
			CategoryID:  "cat-burgers",
			Extras: []domain.Extra{
				{ID: "ext-doneness", Name: "Doneness", Price: decimal.Zero, Min: 1, Max: 1, Required: true},
				{ID: "ext-bacon", Name: "Bacon", Price: decimal.RequireFromString("1.50"), Min: 0, Max: 2},
			},
			ExtraGroupIDs: []string{"grp-sauces"},
		},
		{
			ID:            "prod-margherita",
			Name:          "Margherita",
			Description:   "Tomato, mozzarella and basil",
			Price:         decimal.RequireFromString("10.00"),
			CategoryID:    "cat-pizzas",
			Extras:        []domain.Extra{{ID: "ext-mozzarella", Name: "Extra mozzarella", Price: decimal.RequireFromString("1.50"), Min: 0, Max: 3}},
			ExtraGroupIDs: []string{},
		},
		{
			ID:            "prod-lemonade",
			Name:          "Lemonade",
			Description:   "Fresh lemonade",
			Price:         decimal.RequireFromString("2.50"),
			CategoryID:    "cat-drinks",
			Extras:        []domain.Extra{},
			ExtraGroupIDs: []string{},
		},
	}
}

func SeedStock() []domain.StockItem {
	stock := []domain.StockItem{}
	for _, branch := range SeedBranches() {
		for _, product := range SeedProducts() {
			stock = append(stock, domain.StockItem{
				ID:        "stock-" + product.ID + "-" + branch.ID,
				ProductID: product.ID,
				BranchID:  branch.ID,
				Quantity:  50,
			})
		}
	}
	return stock
}

func SeedSettings() domain.Settings {
	return domain.Settings{
		General: domain.GeneralSettings{
			StoreName:   "Storefront",
			Currency:    "USD",
			DeliveryFee: decimal.RequireFromString("2.00"),
		},
		Appearance: domain.AppearanceSettings{PrimaryColor: "#e4572e"},
		Notification: domain.NotificationSettings{
			SoundEnabled:        true,
			PollIntervalSeconds: 30,
		},
		Payment: domain.PaymentSettings{CardEnabled: true, Method: "card"},
		WhatsApp: domain.WhatsAppSettings{
			Template: DefaultWhatsAppTemplate,
		},
	}
}
