package test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hanifmaulana/tokokita/core/category"
	"github.com/hanifmaulana/tokokita/core/product"
)

type catalogTest struct {
	*TestEnv
}

func TestCatalog(t *testing.T) {
	env, err := NewTestEnv(t, "catalog_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ct := &catalogTest{env}

	ct.Login(t, ct.AdminEmail, ct.AdminPass)
	cat := ct.createCategoryOK(t, "Kaos")
	p1 := ct.createProductOK(t, product.ProductNew{
		Title:        "Kaos Polos",
		Price:        "50.000",
		ThumbnailURL: "https://img.example.com/kaos.jpg",
		CategoryID:   &cat.ID,
		Sizes:        []string{"S", "M", "L"},
	})
	p2 := ct.createProductOK(t, product.ProductNew{
		Title:        "Kemeja Flanel",
		Price:        "125.000",
		ThumbnailURL: "https://img.example.com/kemeja.jpg",
		Featured:     true,
	})
	ct.Logout(t)

	if p1.Slug == "" || p1.Slug == p2.Slug {
		t.Fatalf("products must carry distinct non-empty slugs, got %q and %q", p1.Slug, p2.Slug)
	}

	// Listing and lookup are public.
	page := ct.listProductsOK(t, "")
	if page.Total != 2 {
		t.Fatalf("expected 2 products in the catalog, got %d", page.Total)
	}

	page = ct.listProductsOK(t, "?featured=true")
	if page.Total != 1 || page.Items[0].ID != p2.ID {
		t.Fatalf("featured filter returned the wrong listing: %+v", page)
	}

	page = ct.listProductsOK(t, "?category="+cat.ID)
	if page.Total != 1 || page.Items[0].ID != p1.ID {
		t.Fatalf("category filter returned the wrong listing: %+v", page)
	}

	page = ct.listProductsOK(t, "?page=1&pageSize=1")
	if page.Total != 2 || len(page.Items) != 1 {
		t.Fatalf("expected one item of two on the first page, got %+v", page)
	}

	// The same product resolves by id and by slug.
	byID := ct.showProductOK(t, p1.ID)
	bySlug := ct.showProductOK(t, p1.Slug)
	if diff := cmp.Diff(byID, bySlug); diff != "" {
		t.Fatalf("id and slug lookups disagree: %s", diff)
	}

	// Writes are admin-only.
	ct.Login(t, ct.UserEmail, ct.UserPass)
	code := ct.do(t, http.MethodPost, "/products", product.ProductNew{
		Title:        "Nope",
		Price:        "1.000",
		ThumbnailURL: "https://img.example.com/nope.jpg",
	}, nil)
	if code != http.StatusForbidden {
		t.Fatalf("expected product create to be rejected for users, got status %d", code)
	}
	ct.Logout(t)

	ct.Login(t, ct.AdminEmail, ct.AdminPass)
	newPrice := "60.000"
	var updated product.Product
	code = ct.do(t, http.MethodPut, "/products/"+p1.ID, product.ProductUp{Price: &newPrice}, &updated)
	if code != http.StatusOK {
		t.Fatalf("updating product: status code %d", code)
	}
	if updated.Price != newPrice || updated.Title != p1.Title {
		t.Fatalf("update changed the wrong fields: %+v", updated)
	}

	if code := ct.do(t, http.MethodDelete, "/products/"+p2.ID, nil, nil); code != http.StatusNoContent {
		t.Fatalf("deleting product: status code %d", code)
	}
	ct.Logout(t)

	if code := ct.do(t, http.MethodGet, "/products/"+p2.ID, nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected deleted product lookup to 404, got %d", code)
	}
}

func (ct *catalogTest) createCategoryOK(t *testing.T, name string) category.Category {
	t.Helper()
	var cat category.Category
	code := ct.do(t, http.MethodPost, "/categories", map[string]string{"name": name}, &cat)
	if code != http.StatusCreated {
		t.Fatalf("creating category %q: status code %d", name, code)
	}
	return cat
}

func (ct *catalogTest) createProductOK(t *testing.T, pn product.ProductNew) product.Product {
	t.Helper()
	var prd product.Product
	code := ct.do(t, http.MethodPost, "/products", pn, &prd)
	if code != http.StatusCreated {
		t.Fatalf("creating product %q: status code %d", pn.Title, code)
	}
	return prd
}

func (ct *catalogTest) listProductsOK(t *testing.T, query string) product.Page {
	t.Helper()
	var page product.Page
	code := ct.do(t, http.MethodGet, "/products"+query, nil, &page)
	if code != http.StatusOK {
		t.Fatalf("listing products with %q: status code %d", query, code)
	}
	return page
}

func (ct *catalogTest) showProductOK(t *testing.T, idOrSlug string) product.Product {
	t.Helper()
	var prd product.Product
	code := ct.do(t, http.MethodGet, "/products/"+idOrSlug, nil, &prd)
	if code != http.StatusOK {
		t.Fatalf("showing product %q: status code %d", idOrSlug, code)
	}
	return prd
}
