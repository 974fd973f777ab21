package domain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AvailableQuantity returns the tracked quantity for a product at a branch.
// Untracked products count as out of stock.
func AvailableQuantity(stock []StockItem, productID, branchID string) int {
	for _, item := range stock {
		if item.ProductID == productID && item.BranchID == branchID {
			return item.Quantity
		}
	}
	return 0
}

// Clamp limits a requested quantity to what is available. A result <= 0 means
// the add is a no-op.
func Clamp(requested, available int) int {
	if requested < available {
		return requested
	}
	return available
}

// NormalizeExtras drops unselected extras and sorts by extra id.
func NormalizeExtras(extras []SelectedExtra) []SelectedExtra {
	normalized := make([]SelectedExtra, 0, len(extras))
	for _, e := range extras {
		if e.Quantity > 0 {
			normalized = append(normalized, e)
		}
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].ExtraID < normalized[j].ExtraID
	})
	return normalized
}

// ExtrasKey is the canonical form used to decide whether two lines match.
func ExtrasKey(extras []SelectedExtra) string {
	normalized := NormalizeExtras(extras)
	parts := make([]string, 0, len(normalized))
	for _, e := range normalized {
		parts = append(parts, e.ExtraID+":"+strconv.Itoa(e.Quantity))
	}
	return strings.Join(parts, ",")
}

func (i CartItem) UnitPrice() decimal.Decimal {
	price := i.Product.Price
	for _, e := range i.SelectedExtras {
		price = price.Add(e.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return price
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i CartItem) matches(productID, key string) bool {
	return i.Product.ID == productID && ExtrasKey(i.SelectedExtras) == key
}

// Cart keeps lines in insertion order. Lines with the same product and the
// same extras set are merged.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) Find(productID string, extras []SelectedExtra) int {
	key := ExtrasKey(extras)
	for i, item := range c.Items {
		if item.matches(productID, key) {
			return i
		}
	}
	return -1
}

// Add merges into an existing line or appends a new one and returns the line
// index. Stock clamping is the caller's job.
func (c *Cart) Add(product Product, quantity int, extras []SelectedExtra) int {
	if quantity <= 0 {
		return -1
	}
	if i := c.Find(product.ID, extras); i >= 0 {
		c.Items[i].Quantity += quantity
		return i
	}
	c.Items = append(c.Items, CartItem{
		Product:        product,
		Quantity:       quantity,
		SelectedExtras: NormalizeExtras(extras),
	})
	return len(c.Items) - 1
}

// Remove deletes the matching line. Missing lines are ignored.
func (c *Cart) Remove(productID string, extras []SelectedExtra) bool {
	i := c.Find(productID, extras)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// UpdateQuantity sets a line's quantity clamped to available; a non-positive
// result removes the line.
func (c *Cart) UpdateQuantity(index, quantity, available int) bool {
	if index < 0 || index >= len(c.Items) {
		return false
	}
	quantity = Clamp(quantity, available)
	if quantity <= 0 {
		c.Items = append(c.Items[:index], c.Items[index+1:]...)
		return true
	}
	c.Items[index].Quantity = quantity
	return true
}

// QuantityOf sums the quantity of a product across all of its lines.
func (c Cart) QuantityOf(productID string) int {
	total := 0
	for _, item := range c.Items {
		if item.Product.ID == productID {
			total += item.Quantity
		}
	}
	return total
}

func (c Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
