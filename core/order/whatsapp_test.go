package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppURL(t *testing.T) {
	trx := Transaction{
		ID:       "TRX-1700000000000-AB12CD",
		UserInfo: UserInfo{Name: "Budi"},
		Items: LineItems{
			{Title: "Kaos Polos", Price: "5.000", Size: "M", Quantity: 2},
		},
		Subtotal:     10000,
		ShippingCost: 8000,
		TotalAmount:  18000,
		ShippingInfo: ShippingInfo{
			Recipient: "Budi",
			Phone:     "0812",
			Street:    "Jl. Melati 4",
			Village:   "Mekarjaya",
			City:      "Tangerang",
		},
		Payment: Payment{Method: "bank_transfer", ProofURL: "https://img.example/proof.jpg"},
	}

	raw := WhatsAppURL("6281234567890", trx)
	assert.True(t, strings.HasPrefix(raw, "https://wa.me/6281234567890?text="))

	u, err := url.Parse(raw)
	require.NoError(t, err)

	msg := u.Query().Get("text")
	assert.Contains(t, msg, trx.ID)
	assert.Contains(t, msg, "2x Kaos Polos (M)")
	assert.Contains(t, msg, "Total: 18.000")
	assert.Contains(t, msg, "Mekarjaya")
}
