package query

import (
	"context"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/order"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
)

// Handler serves reads straight from the repositories, projected into views.
type Handler struct {
	carts    cart.Repository
	orders   order.Repository
	products product.Repository
	users    user.Repository
}

func NewHandler(carts cart.Repository, orders order.Repository, products product.Repository, users user.Repository) *Handler {
	return &Handler{carts: carts, orders: orders, products: products, users: users}
}

// GetActiveCart returns the customer's active cart, or not-found.
func (h *Handler) GetActiveCart(ctx context.Context, customerID string) (*CartView, error) {
	c, err := h.carts.FindActiveByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("cart", customerID)
	}
	return NewCartView(c), nil
}

func (h *Handler) GetCart(ctx context.Context, cartID string) (*CartView, error) {
	c, err := h.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("cart", cartID)
	}
	return NewCartView(c), nil
}

func (h *Handler) GetOrder(ctx context.Context, orderID string) (*OrderView, error) {
	o, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	return NewOrderView(o), nil
}

func (h *Handler) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*OrderView, error) {
	orders, err := h.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}

func (h *Handler) GetProduct(ctx context.Context, productID string) (*ProductView, error) {
	p, err := h.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("product", productID)
	}
	return NewProductView(p), nil
}

func (h *Handler) GetProductBySku(ctx context.Context, sku string) (*ProductView, error) {
	p, err := h.products.FindBySku(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("product", sku)
	}
	return NewProductView(p), nil
}

// ListProducts pages through the catalog. A non-positive limit selects a
// default page size.
func (h *Handler) ListProducts(ctx context.Context, limit, offset int) ([]*ProductView, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	products, err := h.products.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return productViews(products), nil
}

func (h *Handler) ListProductsByCategory(ctx context.Context, slug string) ([]*ProductView, error) {
	products, err := h.products.FindByCategory(ctx, slug)
	if err != nil {
		return nil, err
	}
	return productViews(products), nil
}

// SearchProducts matches the query against product names and descriptions.
func (h *Handler) SearchProducts(ctx context.Context, q string) ([]*ProductView, error) {
	products, err := h.products.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return productViews(products), nil
}

func (h *Handler) GetUser(ctx context.Context, userID string) (*UserView, error) {
	u, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFoundError("user", userID)
	}
	return NewUserView(u), nil
}

func productViews(products []*product.Product) []*ProductView {
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views
}
