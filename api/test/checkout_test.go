package test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hanifmaulana/tokokita/core/order"
	"github.com/hanifmaulana/tokokita/core/product"
	"github.com/hanifmaulana/tokokita/core/shipping"
	"github.com/hanifmaulana/tokokita/core/user"
)

type checkoutTest struct {
	*TestEnv
}

func TestCheckout(t *testing.T) {
	env, err := NewTestEnv(t, "checkout_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ot := &checkoutTest{env}
	ct := &catalogTest{env}
	rt := &cartTest{env}

	ot.Login(t, ot.AdminEmail, ot.AdminPass)
	p1 := ct.createProductOK(t, product.ProductNew{
		Title:        "Kaos Polos",
		Price:        "5.000",
		ThumbnailURL: "https://img.example.com/kaos.jpg",
		Sizes:        []string{"M", "L"},
	})
	p2 := ct.createProductOK(t, product.ProductNew{
		Title:        "Topi Baseball",
		Price:        "10.000",
		ThumbnailURL: "https://img.example.com/topi.jpg",
	})
	ot.createRateOK(t, "Mekarjaya", 8000)
	ot.createRateOK(t, "Sukamaju", 12000)
	ot.Logout(t)

	ot.Login(t, ot.UserEmail, ot.UserPass)

	// Checkout with an empty cart is rejected before anything else.
	code := ot.do(t, http.MethodPost, "/orders", order.CheckoutNew{
		PaymentMethod: "bank_transfer",
		ProofURL:      "https://img.example.com/proof.jpg",
	}, nil)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected empty-cart checkout to be rejected, got status %d", code)
	}

	rt.addItemOK(t, p1.ID, "M", 2)
	rt.addItemOK(t, p2.ID, "", 1)

	// Without a saved address the checkout still cannot proceed.
	code = ot.do(t, http.MethodPost, "/orders", order.CheckoutNew{
		PaymentMethod: "bank_transfer",
		ProofURL:      "https://img.example.com/proof.jpg",
	}, nil)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected address-less checkout to be rejected, got status %d", code)
	}

	ot.createAddressOK(t, user.AddressNew{
		Recipient: "Budi Santoso",
		Phone:     "081234567890",
		Street:    "Jl. Melati No. 5",
		Village:   "Mekarjaya",
		District:  "Cimanggis",
		City:      "Depok",
		IsPrimary: true,
	})

	trx := ot.checkoutOK(t, order.CheckoutNew{
		PaymentMethod: "bank_transfer",
		ProofURL:      "https://img.example.com/proof.jpg",
		Message:       "Tolong bungkus kado",
	})

	if err := order.CheckRef(trx.ID); err != nil {
		t.Fatalf("order reference %q is malformed: %v", trx.ID, err)
	}
	if trx.Subtotal != 20000 || trx.ShippingCost != 8000 || trx.TotalAmount != 28000 {
		t.Fatalf("checkout arithmetic is off: subtotal %d shipping %d total %d",
			trx.Subtotal, trx.ShippingCost, trx.TotalAmount)
	}
	if trx.Status != order.Pending || trx.Payment.Status != order.PaymentPending {
		t.Fatalf("fresh order must start pending, got %s/%s", trx.Status, trx.Payment.Status)
	}
	if trx.Delivery.Status != order.DeliveryPending || len(trx.Delivery.History) != 1 {
		t.Fatalf("fresh order delivery must start pending with one history entry, got %+v", trx.Delivery)
	}
	if !trx.ExpirationTime.After(trx.OrderDate) {
		t.Fatalf("expiration %s must lie after the order date %s", trx.ExpirationTime, trx.OrderDate)
	}

	// Checkout flushed the cart.
	if crt := rt.showCartOK(t); len(crt.Items) != 0 {
		t.Fatalf("expected the cart to be flushed after checkout, got %+v", crt)
	}

	// The buyer sees the order in their own listing.
	var own []order.Transaction
	if code := ot.do(t, http.MethodGet, "/orders", nil, &own); code != http.StatusOK {
		t.Fatalf("listing own orders: status code %d", code)
	}
	if len(own) != 1 || own[0].ID != trx.ID {
		t.Fatalf("expected exactly the fresh order, got %+v", own)
	}

	wa := ot.whatsAppOK(t, trx.ID)
	ot.Logout(t)

	if !strings.HasPrefix(wa, "https://wa.me/6281234567890?text=") {
		t.Fatalf("unexpected whatsapp link %q", wa)
	}
	decoded, err := url.QueryUnescape(strings.TrimPrefix(wa, "https://wa.me/6281234567890?text="))
	if err != nil {
		t.Fatalf("decoding whatsapp text: %v", err)
	}
	for _, want := range []string{trx.ID, "2x Kaos Polos (M)", "28.000", "Mekarjaya"} {
		if !strings.Contains(decoded, want) {
			t.Fatalf("whatsapp text misses %q:\n%s", want, decoded)
		}
	}

	// Tracking by reference needs no session. Timestamps may lose
	// sub-microsecond precision on the database round trip.
	tracked := ot.trackOK(t, trx.ID)
	if diff := cmp.Diff(trx, tracked, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Fatalf("tracked order disagrees with the checkout response: %s", diff)
	}
	if code := ot.do(t, http.MethodGet, "/orders/track/TRX-1-ZZZZZZ", nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected unknown reference to 404, got %d", code)
	}

	ot.testDelivery(t, trx.ID)
	ot.testPayment(t, trx.ID, p1.ID)
}

// testDelivery walks the order through the delivery lifecycle and
// checks that the stage machine refuses to move backwards.
func (ot *checkoutTest) testDelivery(t *testing.T, ref string) {
	ot.Login(t, ot.AdminEmail, ot.AdminPass)
	defer ot.Logout(t)

	trx := ot.updateDeliveryOK(t, ref, order.DeliveryProcessing)
	if trx.Delivery.Status != order.DeliveryProcessing || len(trx.Delivery.History) != 2 {
		t.Fatalf("expected processing with two history entries, got %+v", trx.Delivery)
	}

	trx = ot.updateDeliveryOK(t, ref, order.DeliveryDelivering)
	if trx.Delivery.EstimatedDelivery == nil {
		t.Fatal("entering delivering must set the estimated delivery time")
	}

	// A stage outside the lifecycle is a client error, not a 500.
	code := ot.do(t, http.MethodPut, "/admin/orders/"+ref+"/delivery",
		order.DeliveryUp{Status: "returned"}, nil)
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected unknown stage to be rejected as unprocessable, got status %d", code)
	}

	// Once on the road the order cannot fall back.
	code = ot.do(t, http.MethodPut, "/admin/orders/"+ref+"/delivery",
		order.DeliveryUp{Status: order.DeliveryPending}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected backward transition to conflict, got status %d", code)
	}

	tracked := ot.trackOK(t, ref)
	if tracked.Delivery.Status != order.DeliveryDelivering || len(tracked.Delivery.History) != 3 {
		t.Fatalf("rejected transition must leave the order untouched, got %+v", tracked.Delivery)
	}

	trx = ot.updateDeliveryOK(t, ref, order.DeliveryCompleted)
	if trx.Delivery.Status != order.DeliveryCompleted || len(trx.Delivery.History) != 4 {
		t.Fatalf("expected completed with four history entries, got %+v", trx.Delivery)
	}

	// Completed is terminal.
	code = ot.do(t, http.MethodPut, "/admin/orders/"+ref+"/delivery",
		order.DeliveryUp{Status: order.DeliveryProcessing}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected transition out of completed to conflict, got status %d", code)
	}

	for i, e := range trx.Delivery.History[1:] {
		if e.Timestamp.Before(trx.Delivery.History[i].Timestamp) {
			t.Fatalf("history timestamps must not decrease: %+v", trx.Delivery.History)
		}
	}
}

// testPayment verifies both admin verdicts and their effect on the
// order status.
func (ot *checkoutTest) testPayment(t *testing.T, acceptRef, productID string) {
	rt := &cartTest{ot.TestEnv}

	ot.Login(t, ot.AdminEmail, ot.AdminPass)
	trx := ot.updatePaymentOK(t, acceptRef, order.PaymentAccepted)
	if trx.Payment.Status != order.PaymentAccepted || trx.Status != order.Success {
		t.Fatalf("accepting the proof must succeed the order, got %s/%s", trx.Payment.Status, trx.Status)
	}
	ot.Logout(t)

	// A second order takes the rejection path.
	ot.Login(t, ot.UserEmail, ot.UserPass)
	rt.addItemOK(t, productID, "L", 1)
	second := ot.checkoutOK(t, order.CheckoutNew{
		PaymentMethod: "e_wallet",
		ProofURL:      "https://img.example.com/proof2.jpg",
	})
	ot.Logout(t)

	ot.Login(t, ot.AdminEmail, ot.AdminPass)
	trx = ot.updatePaymentOK(t, second.ID, order.PaymentRejected)
	if trx.Payment.Status != order.PaymentRejected || trx.Status != order.Failed {
		t.Fatalf("rejecting the proof must fail the order, got %s/%s", trx.Payment.Status, trx.Status)
	}

	// Both orders show up in the admin listing.
	var all []order.Transaction
	if code := ot.do(t, http.MethodGet, "/admin/orders", nil, &all); code != http.StatusOK {
		t.Fatalf("listing all orders: status code %d", code)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders in the admin listing, got %d", len(all))
	}
	ot.Logout(t)
}

func (ot *checkoutTest) createRateOK(t *testing.T, village string, price int) shipping.Rate {
	t.Helper()
	var rt shipping.Rate
	in := shipping.RateNew{Village: village, Price: price}
	if code := ot.do(t, http.MethodPost, "/shipping-rates", in, &rt); code != http.StatusCreated {
		t.Fatalf("creating shipping rate for %q: status code %d", village, code)
	}
	return rt
}

func (ot *checkoutTest) createAddressOK(t *testing.T, an user.AddressNew) user.Address {
	t.Helper()
	var adr user.Address
	if code := ot.do(t, http.MethodPost, "/users/current/addresses", an, &adr); code != http.StatusCreated {
		t.Fatalf("creating address: status code %d", code)
	}
	return adr
}

func (ot *checkoutTest) checkoutOK(t *testing.T, cn order.CheckoutNew) order.Transaction {
	t.Helper()
	var trx order.Transaction
	if code := ot.do(t, http.MethodPost, "/orders", cn, &trx); code != http.StatusCreated {
		t.Fatalf("checking out: status code %d", code)
	}
	return trx
}

func (ot *checkoutTest) trackOK(t *testing.T, ref string) order.Transaction {
	t.Helper()
	var trx order.Transaction
	if code := ot.do(t, http.MethodGet, "/orders/track/"+ref, nil, &trx); code != http.StatusOK {
		t.Fatalf("tracking %s: status code %d", ref, code)
	}
	return trx
}

func (ot *checkoutTest) updateDeliveryOK(t *testing.T, ref string, stage order.DeliveryStage) order.Transaction {
	t.Helper()
	var trx order.Transaction
	code := ot.do(t, http.MethodPut, "/admin/orders/"+ref+"/delivery", order.DeliveryUp{Status: stage}, &trx)
	if code != http.StatusOK {
		t.Fatalf("moving %s to %s: status code %d", ref, stage, code)
	}
	return trx
}

func (ot *checkoutTest) updatePaymentOK(t *testing.T, ref string, verdict order.PaymentStatus) order.Transaction {
	t.Helper()
	var trx order.Transaction
	code := ot.do(t, http.MethodPut, "/admin/orders/"+ref+"/payment", order.PaymentUp{Status: verdict}, &trx)
	if code != http.StatusOK {
		t.Fatalf("setting payment on %s to %s: status code %d", ref, verdict, code)
	}
	return trx
}

func (ot *checkoutTest) whatsAppOK(t *testing.T, ref string) string {
	t.Helper()
	var out struct {
		URL string `json:"url"`
	}
	if code := ot.do(t, http.MethodGet, "/orders/"+ref+"/whatsapp", nil, &out); code != http.StatusOK {
		t.Fatalf("building whatsapp link for %s: status code %d", ref, code)
	}
	return out.URL
}
