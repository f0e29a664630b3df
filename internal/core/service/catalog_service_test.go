package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

func newCatalogFixture() (*CatalogService, *stubProductRepo, *stubPurchaseRepo, *stubAudit) {
	products := newStubProductRepo()
	purchases := newStubPurchaseRepo(products)
	audit := &stubAudit{}
	svc := NewCatalogService(products, purchases, audit, zerolog.Nop())
	return svc, products, purchases, audit
}

func TestCatalogService_AddProduct(t *testing.T) {
	svc, products, _, audit := newCatalogFixture()
	sess := adminSession()

	p, err := svc.AddProduct(context.Background(), sess, ports.AddProductInput{ID: "P1", Name: "Widget", Price: 9.99, Quantity: 5})
	if err != nil {
		t.Fatalf("AddProduct returned error: %v", err)
	}
	if p.ID != "P1" || p.Quantity != 5 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if audit.lastAction() != "product_add" {
		t.Fatalf("expected product_add audit entry, got %q", audit.lastAction())
	}

	if _, err := svc.AddProduct(context.Background(), sess, ports.AddProductInput{ID: "P1", Name: "Other", Price: 1, Quantity: 1}); !errors.Is(err, domain.ErrProductExists) {
		t.Fatalf("expected ErrProductExists, got %v", err)
	}
	if got := products.products["P1"].Name; got != "Widget" {
		t.Fatalf("duplicate add modified existing product: %s", got)
	}
}

func TestCatalogService_AddProduct_Validation(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	sess := adminSession()

	cases := []struct {
		name  string
		input ports.AddProductInput
		field string
	}{
		{"empty id", ports.AddProductInput{Name: "W", Price: 1, Quantity: 0}, "id"},
		{"empty name", ports.AddProductInput{ID: "P1", Price: 1, Quantity: 0}, "name"},
		{"zero price", ports.AddProductInput{ID: "P1", Name: "W", Price: 0, Quantity: 0}, "price"},
		{"negative quantity", ports.AddProductInput{ID: "P1", Name: "W", Price: 1, Quantity: -1}, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddProduct(context.Background(), sess, tc.input)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, ve.Field)
			}
		})
	}
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	sess := adminSession()

	if _, err := svc.AddProduct(context.Background(), sess, ports.AddProductInput{ID: "P1", Name: "Widget", Price: 9.99, Quantity: 5}); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	newPrice := 12.50
	updated, err := svc.UpdateProduct(context.Background(), sess, ports.UpdateProductInput{ID: "P1", Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdateProduct returned error: %v", err)
	}
	if updated.Price != 12.50 {
		t.Fatalf("price not updated: %v", updated.Price)
	}
	if updated.Name != "Widget" || updated.Quantity != 5 {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}

	bad := -1.0
	if _, err := svc.UpdateProduct(context.Background(), sess, ports.UpdateProductInput{ID: "P1", Price: &bad}); err == nil {
		t.Fatalf("expected validation error for negative price")
	}
	if _, err := svc.UpdateProduct(context.Background(), sess, ports.UpdateProductInput{ID: "missing", Price: &newPrice}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_RemoveProduct_ReferencedGuard(t *testing.T) {
	svc, products, purchases, _ := newCatalogFixture()
	sess := adminSession()

	if _, err := svc.AddProduct(context.Background(), sess, ports.AddProductInput{ID: "P1", Name: "Widget", Price: 10, Quantity: 5}); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, _, err := purchases.ReserveAndRecord(context.Background(), 1, "P1", 2); err != nil {
		t.Fatalf("ReserveAndRecord: %v", err)
	}

	if err := svc.RemoveProduct(context.Background(), sess, "P1"); !errors.Is(err, domain.ErrProductReferenced) {
		t.Fatalf("expected ErrProductReferenced, got %v", err)
	}
	if _, ok := products.products["P1"]; !ok {
		t.Fatalf("referenced product must not be deleted")
	}

	// An unreferenced product deletes cleanly.
	if _, err := svc.AddProduct(context.Background(), sess, ports.AddProductInput{ID: "P2", Name: "Gadget", Price: 3, Quantity: 1}); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if err := svc.RemoveProduct(context.Background(), sess, "P2"); err != nil {
		t.Fatalf("RemoveProduct returned error: %v", err)
	}
	if _, ok := products.products["P2"]; ok {
		t.Fatalf("unreferenced product was not deleted")
	}
}

func TestCatalogService_Search(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	sess := adminSession()

	seed := []ports.AddProductInput{
		{ID: "P1", Name: "Red Widget", Price: 5, Quantity: 3},
		{ID: "P2", Name: "Blue Widget", Price: 15, Quantity: 0},
		{ID: "P3", Name: "Gadget", Price: 25, Quantity: 7},
	}
	for _, in := range seed {
		if _, err := svc.AddProduct(context.Background(), sess, in); err != nil {
			t.Fatalf("AddProduct %s: %v", in.ID, err)
		}
	}

	got, err := svc.SearchProducts(context.Background(), userSession(1), ports.SearchCriteria{Name: "widget"})
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 widgets, got %d", len(got))
	}

	got, err = svc.SearchProducts(context.Background(), userSession(1), ports.SearchCriteria{Name: "widget", InStockOnly: true})
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != 1 || got[0].ID != "P1" {
		t.Fatalf("expected only P1 in stock, got %+v", got)
	}

	min, max := 10.0, 30.0
	got, err = svc.SearchProducts(context.Background(), userSession(1), ports.SearchCriteria{MinPrice: &min, MaxPrice: &max})
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products in price range, got %d", len(got))
	}

	badMax := 5.0
	if _, err := svc.SearchProducts(context.Background(), userSession(1), ports.SearchCriteria{MinPrice: &min, MaxPrice: &badMax}); err == nil {
		t.Fatalf("expected validation error for max < min")
	}
}

func TestCatalogService_List_Pagination(t *testing.T) {
	svc, _, _, _ := newCatalogFixture()
	sess := adminSession()

	for _, id := range []string{"P1", "P2", "P3", "P4", "P5"} {
		if _, err := svc.AddProduct(context.Background(), sess, ports.AddProductInput{ID: id, Name: "N " + id, Price: 1, Quantity: 1}); err != nil {
			t.Fatalf("AddProduct %s: %v", id, err)
		}
	}

	page := ports.PageRequest{Page: 2, PageSize: 2}
	got, total, err := svc.ListProducts(context.Background(), userSession(1), page)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(got) != 2 || got[0].ID != "P3" {
		t.Fatalf("unexpected page contents: %+v", got)
	}
	if pages := page.TotalPages(total); pages != 3 {
		t.Fatalf("expected 3 pages, got %d", pages)
	}
}

func TestCatalogService_Authorization(t *testing.T) {
	svc, products, _, _ := newCatalogFixture()

	admin := adminSession()
	if _, err := svc.AddProduct(context.Background(), admin, ports.AddProductInput{ID: "P1", Name: "Widget", Price: 10, Quantity: 5}); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	user := userSession(1)
	if _, err := svc.AddProduct(context.Background(), user, ports.AddProductInput{ID: "P9", Name: "X", Price: 1, Quantity: 1}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user AddProduct, got %v", err)
	}
	if err := svc.RemoveProduct(context.Background(), user, "P1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user RemoveProduct, got %v", err)
	}
	if _, err := svc.SalesAnalysis(context.Background(), user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for user SalesAnalysis, got %v", err)
	}

	// Denials must not mutate anything.
	if len(products.products) != 1 {
		t.Fatalf("denied calls mutated the catalog")
	}

	var nilSess *domain.Session
	if _, _, err := svc.ListProducts(context.Background(), nilSess, ports.PageRequest{Page: 1, PageSize: 10}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for nil session, got %v", err)
	}
}
