package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/retailops/store-console/internal/core/domain"
	"github.com/retailops/store-console/internal/core/ports"
)

type stubPersonRepo struct {
	nextID  int64
	persons map[int64]*domain.Person
}

func newStubPersonRepo() *stubPersonRepo {
	return &stubPersonRepo{nextID: 1, persons: make(map[int64]*domain.Person)}
}

func clonePerson(p *domain.Person) *domain.Person {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPersonRepo) Create(_ context.Context, person *domain.Person) (*domain.Person, error) {
	for _, p := range r.persons {
		if p.Email == person.Email {
			return nil, domain.ErrEmailExists
		}
	}
	copy := clonePerson(person)
	copy.ID = r.nextID
	r.nextID++
	r.persons[copy.ID] = clonePerson(copy)
	return copy, nil
}

func (r *stubPersonRepo) FindByID(_ context.Context, id int64) (*domain.Person, error) {
	p, ok := r.persons[id]
	if !ok {
		return nil, domain.ErrPersonNotFound
	}
	return clonePerson(p), nil
}

func (r *stubPersonRepo) FindByEmail(_ context.Context, email string) (*domain.Person, error) {
	for _, p := range r.persons {
		if p.Email == email {
			return clonePerson(p), nil
		}
	}
	return nil, domain.ErrPersonNotFound
}

func (r *stubPersonRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, p := range r.persons {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPersonRepo) UpdateCredentials(_ context.Context, email, hash, salt string) error {
	for _, p := range r.persons {
		if p.Email == email {
			p.PasswordHash = hash
			p.Salt = salt
			return nil
		}
	}
	return domain.ErrPersonNotFound
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) error {
	if _, exists := r.products[product.ID]; exists {
		return domain.ErrProductExists
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) all() []domain.Product {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubProductRepo) List(_ context.Context, page ports.PageRequest) ([]domain.Product, int, error) {
	all := r.all()
	total := len(all)
	start := page.Offset()
	if start >= total {
		return nil, total, nil
	}
	end := start + page.PageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *stubProductRepo) Search(_ context.Context, c ports.SearchCriteria) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.all() {
		if c.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.Name)) {
			continue
		}
		if c.MinPrice != nil && p.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && p.Price > *c.MaxPrice {
			continue
		}
		if c.InStockOnly && p.Quantity <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) SalesAnalysis(_ context.Context) ([]ports.ProductSales, error) {
	return nil, nil
}

// stubPurchaseRepo shares the product map so ReserveAndRecord can enforce the
// conditional-decrement semantics the real repository has.
type stubPurchaseRepo struct {
	products  *stubProductRepo
	nextID    int64
	purchases []domain.Purchase
}

func newStubPurchaseRepo(products *stubProductRepo) *stubPurchaseRepo {
	return &stubPurchaseRepo{products: products, nextID: 1}
}

func (r *stubPurchaseRepo) ReserveAndRecord(_ context.Context, personID int64, productID string, quantity int) (*domain.Purchase, int, error) {
	p, ok := r.products.products[productID]
	if !ok {
		return nil, 0, domain.ErrProductNotFound
	}
	if p.Quantity < quantity {
		return nil, 0, &domain.InsufficientStockError{ProductID: productID, Requested: quantity, Available: p.Quantity}
	}
	p.Quantity -= quantity
	purchase := domain.Purchase{
		TransactionID: r.nextID,
		PersonID:      personID,
		ProductID:     productID,
		Quantity:      quantity,
		UnitPrice:     p.Price,
		PurchasedAt:   time.Now().UTC(),
	}
	r.nextID++
	r.purchases = append(r.purchases, purchase)
	return &purchase, p.Quantity, nil
}

func (r *stubPurchaseRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	n := 0
	for _, p := range r.purchases {
		if p.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (r *stubPurchaseRepo) HistoryByPerson(_ context.Context, personID int64, page ports.PageRequest) ([]ports.PurchaseLine, int, error) {
	var lines []ports.PurchaseLine
	for _, p := range r.purchases {
		if p.PersonID != personID {
			continue
		}
		lines = append(lines, ports.PurchaseLine{
			TransactionID: p.TransactionID,
			PurchasedAt:   p.PurchasedAt,
			PersonID:      p.PersonID,
			ProductID:     p.ProductID,
			Quantity:      p.Quantity,
			UnitPrice:     p.UnitPrice,
			Total:         p.Total(),
		})
	}
	total := len(lines)
	start := page.Offset()
	if start >= total {
		return nil, total, nil
	}
	end := start + page.PageSize
	if end > total {
		end = total
	}
	return lines[start:end], total, nil
}

func (r *stubPurchaseRepo) SummaryByPerson(_ context.Context, personID int64) (*ports.CustomerSummary, error) {
	sum := &ports.CustomerSummary{PersonID: personID}
	for _, p := range r.purchases {
		if p.PersonID != personID {
			continue
		}
		sum.TotalTransactions++
		sum.TotalItems += p.Quantity
		sum.TotalSpent += p.Total()
		if p.PurchasedAt.After(sum.LastPurchase) {
			sum.LastPurchase = p.PurchasedAt
		}
	}
	return sum, nil
}

func (r *stubPurchaseRepo) ListAll(_ context.Context, page ports.PageRequest) ([]ports.PurchaseLine, int, error) {
	var lines []ports.PurchaseLine
	for _, p := range r.purchases {
		lines = append(lines, ports.PurchaseLine{
			TransactionID: p.TransactionID,
			PersonID:      p.PersonID,
			ProductID:     p.ProductID,
			Quantity:      p.Quantity,
			UnitPrice:     p.UnitPrice,
			Total:         p.Total(),
		})
	}
	total := len(lines)
	start := page.Offset()
	if start >= total {
		return nil, total, nil
	}
	end := start + page.PageSize
	if end > total {
		end = total
	}
	return lines[start:end], total, nil
}

type auditEntry struct {
	userID int64
	action string
	detail string
}

type stubAudit struct {
	entries []auditEntry
}

func (a *stubAudit) UserAction(userID int64, action, detail string) {
	a.entries = append(a.entries, auditEntry{userID: userID, action: action, detail: detail})
}

func (a *stubAudit) lastAction() string {
	if len(a.entries) == 0 {
		return ""
	}
	return a.entries[len(a.entries)-1].action
}

func adminSession() *domain.Session {
	return domain.NewSession(&domain.Person{ID: 99, FirstName: "Ada", LastName: "Admin", Email: "ada@store.local", Role: domain.RoleAdmin})
}

func userSession(id int64) *domain.Session {
	return domain.NewSession(&domain.Person{ID: id, FirstName: "Uma", LastName: "User", Email: fmt.Sprintf("user%d@store.local", id), Role: domain.RoleUser})
}
