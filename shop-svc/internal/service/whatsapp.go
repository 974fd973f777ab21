package service

import (
	"fmt"
	"net/url"
	"strings"

	"restaurant-storefront/shop-svc/internal/domain"
)

// RenderTemplate fills the WhatsApp message placeholders for an order.
// Unknown placeholders are left as they are.
func RenderTemplate(template string, order domain.Order, branchName string) string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		line := fmt.Sprintf("%dx %s", item.Quantity, item.Name)
		if len(item.Extras) > 0 {
			names := make([]string, 0, len(item.Extras))
			for _, e := range item.Extras {
				names = append(names, e.Name)
			}
			line += " (" + strings.Join(names, ", ") + ")"
		}
		lines = append(lines, line+" - "+item.LineTotal.StringFixed(2))
	}

	return strings.NewReplacer(
		"{order-number}", order.ID,
		"{customer-name}", order.Customer.Name,
		"{customer-phone}", order.Customer.Phone,
		"{customer-address}", order.Customer.Address,
		"{items}", strings.Join(lines, "\n"),
		"{subtotal}", order.Subtotal.StringFixed(2),
		"{delivery-fee}", order.DeliveryFee.StringFixed(2),
		"{total}", order.Total.StringFixed(2),
		"{status}", string(order.Status),
		"{branch-name}", branchName,
	).Replace(template)
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WhatsAppLink builds a click-to-chat link; phone keeps its digits only.
func WhatsAppLink(phone, message string) (string, error) {
	digits := digitsOnly(phone)
	if digits == "" {
		return "", domain.NewValidationError("phone", "whatsapp phone is not configured")
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text, nil
}
