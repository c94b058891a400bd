package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hanifmaulana/tokokita/money"
)

// WhatsAppMessage renders the preformatted order text the buyer sends
// to the shop. Delivery of the message is entirely manual; nothing
// confirms it arrived.
func WhatsAppMessage(trx Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New order %s\n", trx.ID)
	fmt.Fprintf(&b, "Name: %s\n", trx.UserInfo.Name)
	b.WriteString("\nItems:\n")
	for _, it := range trx.Items {
		line := fmt.Sprintf("- %dx %s", it.Quantity, it.Title)
		if it.Size != "" {
			line += fmt.Sprintf(" (%s)", it.Size)
		}
		fmt.Fprintf(&b, "%s @ %s\n", line, it.Price)
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", money.Format(trx.Subtotal))
	fmt.Fprintf(&b, "Shipping: %s\n", money.Format(trx.ShippingCost))
	fmt.Fprintf(&b, "Total: %s\n", money.Format(trx.TotalAmount))

	si := trx.ShippingInfo
	fmt.Fprintf(&b, "\nShip to: %s (%s)\n%s, %s, %s\n", si.Recipient, si.Phone, si.Street, si.Village, si.City)

	if trx.Message != "" {
		fmt.Fprintf(&b, "\nNote: %s\n", trx.Message)
	}

	fmt.Fprintf(&b, "\nPayment: %s\nProof: %s\n", trx.Payment.Method, trx.Payment.ProofURL)

	return b.String()
}

// WhatsAppURL wraps the message into a wa.me deep link.
func WhatsAppURL(number string, trx Transaction) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(WhatsAppMessage(trx)))
}
