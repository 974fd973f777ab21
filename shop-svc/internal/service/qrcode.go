package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// ReceiptQRGenerator encodes a link to the order's public receipt page.
type ReceiptQRGenerator struct {
	BaseURL string
	Size    int
}

func (g ReceiptQRGenerator) Generate(orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, fmt.Errorf("qrcode: empty order id")
	}
	size := g.Size
	if size <= 0 {
		size = 256
	}
	qrData := fmt.Sprintf("%s/orders/%s", g.BaseURL, url.PathEscape(orderID))
	return qrcode.Encode(qrData, qrcode.Medium, size)
}
