package query

import (
	"time"

	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/money"
	"github.com/example/ec-shop/internal/domain/order"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
)

// MoneyView renders an amount as an exact decimal string plus its currency.
type MoneyView struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoneyView(m money.Money) MoneyView {
	return MoneyView{Amount: m.Amount().StringFixed(2), Currency: m.Currency()}
}

type CartItemView struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   MoneyView `json:"unit_price"`
	Discount    MoneyView `json:"discount"`
	Subtotal    MoneyView `json:"subtotal"`
	Total       MoneyView `json:"total"`
}

type CartView struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customer_id"`
	Status        string         `json:"status"`
	Currency      string         `json:"currency"`
	Items         []CartItemView `json:"items"`
	TotalItems    int            `json:"total_items"`
	Subtotal      MoneyView      `json:"subtotal"`
	TotalDiscount MoneyView      `json:"total_discount"`
	TotalAmount   MoneyView      `json:"total_amount"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewCartView(c *cart.Cart) *CartView {
	items := make([]CartItemView, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartItemView{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity().Value(),
			UnitPrice:   NewMoneyView(item.UnitPrice()),
			Discount:    NewMoneyView(item.Discount()),
			Subtotal:    NewMoneyView(item.Subtotal()),
			Total:       NewMoneyView(item.Total()),
		})
	}
	return &CartView{
		ID:            c.ID(),
		CustomerID:    c.CustomerID(),
		Status:        string(c.Status()),
		Currency:      c.Currency(),
		Items:         items,
		TotalItems:    c.TotalItemCount(),
		Subtotal:      NewMoneyView(c.Subtotal()),
		TotalDiscount: NewMoneyView(c.TotalDiscount()),
		TotalAmount:   NewMoneyView(c.TotalAmount()),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

type OrderLineView struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   MoneyView `json:"unit_price"`
	Discount    MoneyView `json:"discount"`
	Subtotal    MoneyView `json:"subtotal"`
	Total       MoneyView `json:"total"`
}

type ShippingAddressView struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type OrderView struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	Status          string              `json:"status"`
	Currency        string              `json:"currency"`
	Lines           []OrderLineView     `json:"lines"`
	ShippingAddress ShippingAddressView `json:"shipping_address"`
	TrackingNumber  string              `json:"tracking_number,omitempty"`
	TotalItems      int                 `json:"total_items"`
	Subtotal        MoneyView           `json:"subtotal"`
	TotalDiscount   MoneyView           `json:"total_discount"`
	TotalAmount     MoneyView           `json:"total_amount"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func NewOrderView(o *order.Order) *OrderView {
	lines := make([]OrderLineView, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, OrderLineView{
			ID:          line.ID(),
			ProductID:   line.ProductID(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity().Value(),
			UnitPrice:   NewMoneyView(line.UnitPrice()),
			Discount:    NewMoneyView(line.Discount()),
			Subtotal:    NewMoneyView(line.Subtotal()),
			Total:       NewMoneyView(line.Total()),
		})
	}
	addr := o.ShippingAddress()
	return &OrderView{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Status:     string(o.Status()),
		Currency:   o.Currency(),
		Lines:      lines,
		ShippingAddress: ShippingAddressView{
			Street:  addr.Street(),
			City:    addr.City(),
			State:   addr.State(),
			ZipCode: addr.ZipCode(),
			Country: addr.Country(),
		},
		TrackingNumber: o.TrackingNumber(),
		TotalItems:     o.TotalItemCount(),
		Subtotal:       NewMoneyView(o.Subtotal()),
		TotalDiscount:  NewMoneyView(o.TotalDiscount()),
		TotalAmount:    NewMoneyView(o.TotalAmount()),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

type ProductView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Sku         string         `json:"sku"`
	Price       MoneyView      `json:"price"`
	Category    CategoryView   `json:"category"`
	Stock       int            `json:"stock"`
	IsActive    bool           `json:"is_active"`
	IsAvailable bool           `json:"is_available"`
	ImageURLs   []string       `json:"image_urls"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CategoryView struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func NewProductView(p *product.Product) *ProductView {
	return &ProductView{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Sku:         p.Sku().Value(),
		Price:       NewMoneyView(p.Price()),
		Category: CategoryView{
			Name: p.Category().Name(),
			Slug: p.Category().Slug(),
		},
		Stock:       p.StockQuantity(),
		IsActive:    p.IsActive(),
		IsAvailable: p.IsAvailable(),
		ImageURLs:   p.ImageURLs(),
		Metadata:    p.Metadata(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserView(u *user.User) *UserView {
	return &UserView{
		ID:        u.ID(),
		Email:     u.Email().Value(),
		Roles:     user.RolesToStrings(u.Roles()),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}
