package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes a link to the batch receipt page.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(batchID string) string {
	return strings.TrimRight(g.BaseURL, "/") + "/orders/batches/" + batchID
}

func (g DefaultQRGenerator) Generate(batchID string) ([]byte, error) {
	return qrcode.Encode(g.Link(batchID), qrcode.Medium, 256)
}
