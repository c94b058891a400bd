package order

import (
	"github.com/hanifmaulana/tokokita/money"
)

// CheckoutNew is the checkout submission. Items come from the server-
// side cart; the client only supplies the payment proof, an optional
// note and, optionally, a saved address to ship to.
type CheckoutNew struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=bank_transfer e_wallet"`
	ProofURL      string `json:"proof" validate:"required,url"`
	Message       string `json:"message"`
	AddressID     string `json:"addressId" validate:"omitempty,uuid"`
}

// DeliveryUp is the admin stage-change request.
type DeliveryUp struct {
	Status DeliveryStage `json:"status" validate:"required,oneof=pending processing delivering completed"`
}

// PaymentUp is the admin payment verdict.
type PaymentUp struct {
	Status PaymentStatus `json:"status" validate:"required,oneof=accepted rejected"`
}

// Totals computes the checkout arithmetic: each price string is
// normalized to an integer, multiplied by its quantity and summed, and
// the shipping cost is added on top. No tax, no discounts.
func Totals(items []LineItem, shippingCost int) (subtotal, total int) {
	for _, it := range items {
		subtotal += money.Parse(it.Price) * it.Quantity
	}
	return subtotal, subtotal + shippingCost
}
