package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/money"
	"github.com/example/ec-shop/internal/domain/order"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
	"github.com/example/ec-shop/internal/salesforce"
)

func cad(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.NewFromFloat(amount, "CAD")
	require.NoError(t, err)
	return m
}

func fakeProduct(t *testing.T, stock int) *product.Product {
	t.Helper()
	cat, err := product.NewCategory("Electronics", "")
	require.NoError(t, err)
	sku := fmt.Sprintf("SKU-%d", gofakeit.Number(100000, 999999))
	p, err := product.New(
		gofakeit.ProductName(), gofakeit.ProductDescription(), sku,
		cad(t, gofakeit.Price(1, 500)), cat, stock)
	require.NoError(t, err)
	return p
}

type cartSnapshot struct {
	ID         string
	CustomerID string
	Status     cart.Status
	Currency   string
	Items      []cartItemSnapshot
}

type cartItemSnapshot struct {
	ProductID string
	Quantity  int
	UnitPrice string
}

func snapshotCart(c *cart.Cart) cartSnapshot {
	snap := cartSnapshot{
		ID:         c.ID(),
		CustomerID: c.CustomerID(),
		Status:     c.Status(),
		Currency:   c.Currency(),
	}
	for _, item := range c.Items() {
		snap.Items = append(snap.Items, cartItemSnapshot{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity().Value(),
			UnitPrice: item.UnitPrice().String(),
		})
	}
	return snap
}

func TestCartRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	c, err := cart.New("customer-1", "CAD")
	require.NoError(t, err)
	require.NoError(t, c.AddItem("prod-1", "Widget", 2, cad(t, 10.00)))
	require.NoError(t, c.AddItem("prod-2", "Gadget", 1, cad(t, 5.50)))
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)

	if diff := cmp.Diff(snapshotCart(c), snapshotCart(loaded)); diff != "" {
		t.Errorf("cart mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, loaded.Events())
}

func TestCartRepository_SavedStateIsDetached(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	c, err := cart.New("customer-1", "CAD")
	require.NoError(t, err)
	require.NoError(t, c.AddItem("prod-1", "Widget", 1, cad(t, 10.00)))
	require.NoError(t, repo.Save(ctx, c))

	// Mutating the live aggregate after save must not leak into the store.
	require.NoError(t, c.AddItem("prod-2", "Gadget", 1, cad(t, 5.00)))

	loaded, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Len(t, loaded.Items(), 1)
}

func TestCartRepository_FindActiveByCustomerID(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	c, err := cart.New("customer-1", "CAD")
	require.NoError(t, err)
	require.NoError(t, c.AddItem("prod-1", "Widget", 1, cad(t, 10.00)))
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindActiveByCustomerID(ctx, "customer-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, c.ID(), found.ID())

	require.NoError(t, c.Checkout())
	require.NoError(t, repo.Save(ctx, c))

	found, err = repo.FindActiveByCustomerID(ctx, "customer-1")
	require.NoError(t, err)
	assert.Nil(t, found)

	all, err := repo.FindAllByCustomerID(ctx, "customer-1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCartRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	c, err := cart.New("customer-1", "CAD")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))
	require.NoError(t, repo.Delete(ctx, c.ID()))

	loaded, err := repo.FindByID(ctx, c.ID())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestOrderRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	addr, err := order.NewShippingAddress("123 Main St", "Toronto", "ON", "M5V 1A1", "Canada")
	require.NoError(t, err)
	line, err := order.NewLine("prod-1", "Widget", 2, cad(t, 10.00), money.Money{})
	require.NoError(t, err)
	o, err := order.New("customer-1", []*order.Line{line}, addr, "CAD")
	require.NoError(t, err)
	require.NoError(t, o.Confirm())
	require.NoError(t, repo.Save(ctx, o))

	loaded, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, order.StatusConfirmed, loaded.Status())
	assert.Equal(t, "20.00 CAD", loaded.TotalAmount().String())
	assert.True(t, loaded.ShippingAddress().Equals(addr))
	require.Len(t, loaded.Lines(), 1)
	assert.Equal(t, "prod-1", loaded.Lines()[0].ProductID())
	assert.Empty(t, loaded.Events())
}

func TestOrderRepository_FindByCustomerID(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()

	addr, err := order.NewShippingAddress("123 Main St", "Toronto", "ON", "M5V 1A1", "Canada")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		line, err := order.NewLine("prod-1", "Widget", i+1, cad(t, 10.00), money.Money{})
		require.NoError(t, err)
		o, err := order.New("customer-1", []*order.Line{line}, addr, "CAD")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, o))
	}

	orders, err := repo.FindByCustomerID(ctx, "customer-1")
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	orders, err = repo.FindByCustomerID(ctx, "customer-2")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestProductRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	p := fakeProduct(t, 10)
	require.NoError(t, p.AddImage("https://cdn.example.com/img.png"))
	p.SetMetadata("color", "blue")
	require.NoError(t, repo.Save(ctx, p))

	loaded, err := repo.FindByID(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, p.Name(), loaded.Name())
	assert.Equal(t, p.Sku().Value(), loaded.Sku().Value())
	assert.True(t, p.Price().Equals(loaded.Price()))
	assert.Equal(t, p.ImageURLs(), loaded.ImageURLs())
	if diff := cmp.Diff(p.Metadata(), loaded.Metadata()); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestProductRepository_FindBySku(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	p := fakeProduct(t, 5)
	require.NoError(t, repo.Save(ctx, p))

	// Lookup normalizes the same way SKU construction does.
	loaded, err := repo.FindBySku(ctx, "  "+p.Sku().Value()+"  ")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, p.ID(), loaded.ID())

	loaded, err = repo.FindBySku(ctx, "SKU-000000")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestProductRepository_FindAllPaging(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, fakeProduct(t, 1)))
	}

	page, err := repo.FindAll(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = repo.FindAll(ctx, 10, 3)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = repo.FindAll(ctx, 10, 99)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestProductRepository_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	cat, err := product.NewCategory("Electronics", "")
	require.NoError(t, err)
	p, err := product.New("Quantum Widget", "Entangles particles", "QW-001", cad(t, 99.99), cat, 3)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.Save(ctx, fakeProduct(t, 1)))

	hits, err := repo.Search(ctx, "quantum")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, p.ID(), hits[0].ID())

	hits, err = repo.Search(ctx, "ENTANGLES")
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = repo.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestProductRepository_FindByCategory(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	books, err := product.NewCategory("Books", "")
	require.NoError(t, err)
	p, err := product.New("Go Primer", "Learn Go", "BOOK-001", cad(t, 35.00), books, 4)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))
	require.NoError(t, repo.Save(ctx, fakeProduct(t, 1)))

	hits, err := repo.FindByCategory(ctx, "books")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, p.ID(), hits[0].ID())
}

func TestUserRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u, err := user.New(gofakeit.Email(), "hash", []string{"customer", "admin"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	loaded, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, u.Email().Value(), loaded.Email().Value())
	assert.Equal(t, u.Roles(), loaded.Roles())
	assert.True(t, loaded.IsActive())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u, err := user.New("alice@example.com", "hash", []string{"customer"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	loaded, err := repo.FindByEmail(ctx, "  ALICE@example.com ")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, u.ID(), loaded.ID())

	loaded, err = repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestContextRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewContextRepository()

	sfCtx, err := salesforce.NewCartContext("customer-1", "acct-1", salesforce.TTL{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sfCtx))

	loaded, err := repo.FindByID(ctx, sfCtx.ContextID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sfCtx.CustomerID(), loaded.CustomerID())
	assert.Equal(t, salesforce.ContextActive, loaded.Status())

	active, err := repo.FindActiveByCustomerID(ctx, "customer-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, sfCtx.ContextID(), active.ContextID())
}

func TestContextRepository_InactiveContextsAreNotActive(t *testing.T) {
	ctx := context.Background()
	repo := NewContextRepository()

	sfCtx, err := salesforce.NewCartContext("customer-1", "", salesforce.TTL{})
	require.NoError(t, err)
	sfCtx.Invalidate()
	require.NoError(t, repo.Save(ctx, sfCtx))

	active, err := repo.FindActiveByCustomerID(ctx, "customer-1")
	require.NoError(t, err)
	assert.Nil(t, active)
}
