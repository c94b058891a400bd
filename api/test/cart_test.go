package test

import (
	"net/http"
	"testing"

	"github.com/hanifmaulana/tokokita/core/cart"
	"github.com/hanifmaulana/tokokita/core/product"
)

type cartTest struct {
	*TestEnv
}

func TestCart(t *testing.T) {
	env, err := NewTestEnv(t, "cart_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	rt := &cartTest{env}
	ct := &catalogTest{env}

	rt.Login(t, rt.AdminEmail, rt.AdminPass)
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
	rt.Logout(t)

	// The cart is per-account.
	if code := rt.do(t, http.MethodGet, "/cart", nil, nil); code != http.StatusUnauthorized {
		t.Fatalf("expected anonymous cart access to be rejected, got status %d", code)
	}

	rt.Login(t, rt.UserEmail, rt.UserPass)
	defer rt.Logout(t)

	rt.addItemOK(t, p1.ID, "M", 2)
	rt.addItemOK(t, p2.ID, "", 1)

	crt := rt.showCartOK(t)
	if len(crt.Items) != 2 || crt.ItemCount != 3 {
		t.Fatalf("expected 2 lines and 3 items, got %+v", crt)
	}
	if crt.Subtotal != 20000 {
		t.Fatalf("expected subtotal 20000, got %d", crt.Subtotal)
	}

	// Re-adding the same product and size accumulates the quantity.
	rt.addItemOK(t, p1.ID, "M", 1)
	crt = rt.showCartOK(t)
	if len(crt.Items) != 2 || crt.ItemCount != 4 || crt.Subtotal != 25000 {
		t.Fatalf("expected accumulated quantity, got %+v", crt)
	}

	// The same product in another size stays its own line.
	rt.addItemOK(t, p1.ID, "L", 1)
	crt = rt.showCartOK(t)
	if len(crt.Items) != 3 || crt.ItemCount != 5 {
		t.Fatalf("expected a separate line per size, got %+v", crt)
	}

	if code := rt.do(t, http.MethodDelete, "/cart/items/"+p1.ID+"?size=L", nil, nil); code != http.StatusNoContent {
		t.Fatalf("removing cart item: status code %d", code)
	}
	crt = rt.showCartOK(t)
	if len(crt.Items) != 2 {
		t.Fatalf("expected the sized line to be gone, got %+v", crt)
	}

	if code := rt.do(t, http.MethodDelete, "/cart", nil, nil); code != http.StatusNoContent {
		t.Fatalf("flushing cart: status code %d", code)
	}
	crt = rt.showCartOK(t)
	if len(crt.Items) != 0 || crt.Subtotal != 0 {
		t.Fatalf("expected an empty cart, got %+v", crt)
	}
}

func (rt *cartTest) addItemOK(t *testing.T, productID, size string, quantity int) {
	t.Helper()
	in := cart.ItemNew{ProductID: productID, Size: size, Quantity: quantity}
	var items []cart.Item
	if code := rt.do(t, http.MethodPut, "/cart/items", in, &items); code != http.StatusOK {
		t.Fatalf("adding %dx %s to cart: status code %d", quantity, productID, code)
	}
}

func (rt *cartTest) showCartOK(t *testing.T) cart.Cart {
	t.Helper()
	var crt cart.Cart
	if code := rt.do(t, http.MethodGet, "/cart", nil, &crt); code != http.StatusOK {
		t.Fatalf("showing cart: status code %d", code)
	}
	return crt
}
