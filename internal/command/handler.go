package command

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/ec-shop/internal/auth"
	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/cart"
	"github.com/example/ec-shop/internal/domain/money"
	"github.com/example/ec-shop/internal/domain/order"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/domain/user"
	"github.com/example/ec-shop/internal/salesforce"
)

// EventBus publishes domain events after the state change has been saved.
type EventBus interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// eventSource is the slice of an aggregate the dispatcher needs.
type eventSource interface {
	Events() []domain.Event
	ClearEvents()
}

// Handler executes commands against the write model. Each command loads an
// aggregate, invokes a domain operation, saves, and publishes the recorded
// events. Publishing is best-effort: a bus failure is logged, never rolled
// back into the caller.
type Handler struct {
	carts      cart.Repository
	orders     order.Repository
	products   product.Repository
	users      user.Repository
	sfContexts salesforce.ContextRepository
	sfClient   salesforce.Client
	bus        EventBus
	currencies money.Policy
	logger     *zap.Logger
}

func NewHandler(
	carts cart.Repository,
	orders order.Repository,
	products product.Repository,
	users user.Repository,
	sfContexts salesforce.ContextRepository,
	sfClient salesforce.Client,
	bus EventBus,
	currencies money.Policy,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		carts:      carts,
		orders:     orders,
		products:   products,
		users:      users,
		sfContexts: sfContexts,
		sfClient:   sfClient,
		bus:        bus,
		currencies: currencies,
		logger:     logger,
	}
}

// AddItemToCart puts an available product into the customer's active cart,
// creating the cart on first use.
func (h *Handler) AddItemToCart(ctx context.Context, cmd AddItemToCart) (*cart.Cart, error) {
	p, err := h.products.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("product", cmd.ProductID)
	}
	if !p.IsAvailable() {
		return nil, domain.NewBusinessRuleError("product %s is not available", p.Name())
	}
	if p.StockQuantity() < cmd.Quantity {
		return nil, domain.NewBusinessRuleError(
			"insufficient stock for product %s: have %d, requested %d", p.Name(), p.StockQuantity(), cmd.Quantity)
	}

	c, err := h.carts.FindActiveByCustomerID(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c, err = cart.New(cmd.CustomerID, p.Price().Currency())
		if err != nil {
			return nil, err
		}
	}

	if err := c.AddItem(p.ID(), p.Name(), cmd.Quantity, p.Price()); err != nil {
		return nil, err
	}
	if err := h.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	h.dispatch(ctx, c)
	h.syncCartBestEffort(ctx, c)
	return c, nil
}

// RemoveItemFromCart deletes a line from the customer's active cart.
func (h *Handler) RemoveItemFromCart(ctx context.Context, cmd RemoveItemFromCart) (*cart.Cart, error) {
	c, err := h.activeCart(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(cmd.ProductID); err != nil {
		return nil, err
	}
	if err := h.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	h.dispatch(ctx, c)
	h.syncCartBestEffort(ctx, c)
	return c, nil
}

// UpdateCartItem replaces the quantity on a cart line.
func (h *Handler) UpdateCartItem(ctx context.Context, cmd UpdateCartItem) (*cart.Cart, error) {
	c, err := h.activeCart(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateItemQuantity(cmd.ProductID, cmd.Quantity); err != nil {
		return nil, err
	}
	if err := h.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	h.dispatch(ctx, c)
	h.syncCartBestEffort(ctx, c)
	return c, nil
}

// ClearCart empties the customer's active cart.
func (h *Handler) ClearCart(ctx context.Context, cmd ClearCart) (*cart.Cart, error) {
	c, err := h.activeCart(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := c.Clear(); err != nil {
		return nil, err
	}
	if err := h.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	h.dispatch(ctx, c)
	h.syncCartBestEffort(ctx, c)
	return c, nil
}

// CreateOrder checks out a cart into a new pending order. Stock is decreased
// per line, the cart transitions to checked-out, and both aggregates are
// saved before events go out.
func (h *Handler) CreateOrder(ctx context.Context, cmd CreateOrder) (*order.Order, error) {
	c, err := h.carts.FindByID(ctx, cmd.CartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("cart", cmd.CartID)
	}
	if c.CustomerID() != cmd.CustomerID {
		return nil, domain.NewBusinessRuleError("cart %s does not belong to customer %s", cmd.CartID, cmd.CustomerID)
	}

	address, err := order.NewShippingAddress(
		cmd.Shipping.Street, cmd.Shipping.City, cmd.Shipping.State, cmd.Shipping.ZipCode, cmd.Shipping.Country)
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(c.Items()))
	for _, item := range c.Items() {
		line, err := order.NewLine(
			item.ProductID(), item.ProductName(), item.Quantity().Value(), item.UnitPrice(), item.Discount())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	o, err := order.New(cmd.CustomerID, lines, address, c.Currency())
	if err != nil {
		return nil, err
	}

	if err := c.Checkout(); err != nil {
		return nil, err
	}

	for _, item := range c.Items() {
		p, err := h.products.FindByID(ctx, item.ProductID())
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.NewNotFoundError("product", item.ProductID())
		}
		if err := p.DecreaseStock(item.Quantity().Value()); err != nil {
			return nil, err
		}
		if err := h.products.Save(ctx, p); err != nil {
			return nil, err
		}
	}

	if err := h.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	if err := h.carts.Save(ctx, c); err != nil {
		return nil, err
	}

	h.dispatch(ctx, o)
	h.dispatch(ctx, c)
	return o, nil
}

// ConfirmOrder moves an order from pending to confirmed.
func (h *Handler) ConfirmOrder(ctx context.Context, cmd ConfirmOrder) (*order.Order, error) {
	return h.transitionOrder(ctx, cmd.OrderID, (*order.Order).Confirm)
}

// ProcessOrder moves an order from confirmed to processing.
func (h *Handler) ProcessOrder(ctx context.Context, cmd ProcessOrder) (*order.Order, error) {
	return h.transitionOrder(ctx, cmd.OrderID, (*order.Order).Process)
}

// ShipOrder moves an order from processing to shipped.
func (h *Handler) ShipOrder(ctx context.Context, cmd ShipOrder) (*order.Order, error) {
	return h.transitionOrder(ctx, cmd.OrderID, func(o *order.Order) error {
		return o.Ship(cmd.TrackingNumber)
	})
}

// DeliverOrder moves an order from shipped to delivered.
func (h *Handler) DeliverOrder(ctx context.Context, cmd DeliverOrder) (*order.Order, error) {
	return h.transitionOrder(ctx, cmd.OrderID, (*order.Order).Deliver)
}

// CancelOrder cancels a pending or confirmed order and restores stock.
func (h *Handler) CancelOrder(ctx context.Context, cmd CancelOrder) (*order.Order, error) {
	o, err := h.findOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if err := o.Cancel(cmd.Reason); err != nil {
		return nil, err
	}

	for _, line := range o.Lines() {
		p, err := h.products.FindByID(ctx, line.ProductID())
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue // product removed since ordering; nothing to restore
		}
		if err := p.IncreaseStock(line.Quantity().Value()); err != nil {
			return nil, err
		}
		if err := h.products.Save(ctx, p); err != nil {
			return nil, err
		}
	}

	if err := h.orders.Save(ctx, o); err != nil {
		return nil, err
	}

	h.dispatch(ctx, o)
	return o, nil
}

// CreateProduct adds a catalog entry.
func (h *Handler) CreateProduct(ctx context.Context, cmd CreateProduct) (*product.Product, error) {
	existing, err := h.products.FindBySku(ctx, cmd.Sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewBusinessRuleError("product with sku %s already exists", existing.Sku())
	}

	price, err := h.parsePrice(cmd.Price, cmd.Currency)
	if err != nil {
		return nil, err
	}

	category, err := product.NewCategory(cmd.CategoryName, cmd.CategorySlug)
	if err != nil {
		return nil, err
	}

	p, err := product.New(cmd.Name, cmd.Description, cmd.Sku, price, category, cmd.Stock)
	if err != nil {
		return nil, err
	}
	if err := h.products.Save(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateProduct changes a product's name and description.
func (h *Handler) UpdateProduct(ctx context.Context, cmd UpdateProduct) (*product.Product, error) {
	p, err := h.findProduct(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		if err := p.UpdateName(cmd.Name); err != nil {
			return nil, err
		}
	}
	if cmd.Description != "" {
		if err := p.UpdateDescription(cmd.Description); err != nil {
			return nil, err
		}
	}

	if err := h.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProductPrice replaces the price; the currency must stay the same.
func (h *Handler) UpdateProductPrice(ctx context.Context, cmd UpdateProductPrice) (*product.Product, error) {
	p, err := h.findProduct(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	price, err := h.parsePrice(cmd.Price, cmd.Currency)
	if err != nil {
		return nil, err
	}
	if err := p.UpdatePrice(price); err != nil {
		return nil, err
	}

	if err := h.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// IncreaseStock adds stock to a product.
func (h *Handler) IncreaseStock(ctx context.Context, cmd AdjustStock) (*product.Product, error) {
	p, err := h.findProduct(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if err := p.IncreaseStock(cmd.Quantity); err != nil {
		return nil, err
	}
	if err := h.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecreaseStock removes stock from a product.
func (h *Handler) DecreaseStock(ctx context.Context, cmd AdjustStock) (*product.Product, error) {
	p, err := h.findProduct(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if err := p.DecreaseStock(cmd.Quantity); err != nil {
		return nil, err
	}
	if err := h.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetProductActive activates or deactivates a product.
func (h *Handler) SetProductActive(ctx context.Context, cmd SetProductActive) (*product.Product, error) {
	p, err := h.findProduct(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Active {
		p.Activate()
	} else {
		p.Deactivate()
	}

	if err := h.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product from the catalog.
func (h *Handler) DeleteProduct(ctx context.Context, cmd DeleteProduct) error {
	p, err := h.findProduct(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	return h.products.Delete(ctx, p.ID())
}

// RegisterUser creates an account with a freshly hashed password.
func (h *Handler) RegisterUser(ctx context.Context, cmd RegisterUser) (*user.User, error) {
	existing, err := h.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewBusinessRuleError("user with email %s already exists", cmd.Email)
	}

	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	roles := cmd.Roles
	if len(roles) == 0 {
		roles = []string{string(user.RoleCustomer)}
	}

	u, err := user.New(cmd.Email, hash, roles)
	if err != nil {
		return nil, err
	}
	if err := h.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SyncCartToSalesforce pushes the active cart to Salesforce under a live
// context, creating or refreshing the context as needed. A sync failure is
// reported but leaves the shop state untouched.
func (h *Handler) SyncCartToSalesforce(ctx context.Context, cmd SyncCartToSalesforce) (*salesforce.CartContext, error) {
	c, err := h.activeCart(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	sfCtx, err := h.sfContexts.FindActiveByCustomerID(ctx, cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	if sfCtx != nil && sfCtx.HasExpired(now) {
		sfCtx.MarkExpired()
		if err := h.sfContexts.Save(ctx, sfCtx); err != nil {
			return nil, err
		}
		sfCtx = nil
	}
	if sfCtx == nil {
		sfCtx, err = h.sfClient.CreateContext(ctx, cmd.CustomerID)
		if err != nil {
			return nil, err
		}
	} else if err := sfCtx.Touch(now); err != nil {
		return nil, err
	}

	if err := h.sfClient.SyncCart(ctx, sfCtx, snapshotCart(c)); err != nil {
		return nil, err
	}

	if err := h.sfContexts.Save(ctx, sfCtx); err != nil {
		return nil, err
	}
	return sfCtx, nil
}

// syncCartBestEffort pushes the cart to Salesforce when the customer already
// has a live context. Failures are logged and swallowed; a cart mutation never
// fails because Salesforce is unreachable.
func (h *Handler) syncCartBestEffort(ctx context.Context, c *cart.Cart) {
	sfCtx, err := h.sfContexts.FindActiveByCustomerID(ctx, c.CustomerID())
	if err != nil || sfCtx == nil {
		return
	}

	now := time.Now()
	if sfCtx.HasExpired(now) {
		return
	}
	if err := sfCtx.Touch(now); err != nil {
		return
	}

	if err := h.sfClient.SyncCart(ctx, sfCtx, snapshotCart(c)); err != nil {
		h.logger.Warn("salesforce cart sync failed",
			zap.String("cart_id", c.ID()),
			zap.String("context_id", sfCtx.ContextID()),
			zap.Error(err))
		return
	}
	if err := h.sfContexts.Save(ctx, sfCtx); err != nil {
		h.logger.Warn("failed to save salesforce context",
			zap.String("context_id", sfCtx.ContextID()),
			zap.Error(err))
	}
}

func (h *Handler) activeCart(ctx context.Context, customerID string) (*cart.Cart, error) {
	c, err := h.carts.FindActiveByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError("cart", customerID)
	}
	return c, nil
}

func (h *Handler) findOrder(ctx context.Context, orderID string) (*order.Order, error) {
	o, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFoundError("order", orderID)
	}
	return o, nil
}

func (h *Handler) findProduct(ctx context.Context, productID string) (*product.Product, error) {
	p, err := h.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFoundError("product", productID)
	}
	return p, nil
}

func (h *Handler) transitionOrder(ctx context.Context, orderID string, op func(*order.Order) error) (*order.Order, error) {
	o, err := h.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := op(o); err != nil {
		return nil, err
	}
	if err := h.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	h.dispatch(ctx, o)
	return o, nil
}

func (h *Handler) parsePrice(amount, currency string) (money.Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return money.Money{}, domain.NewValidationError("invalid price amount: %q", amount)
	}
	return h.currencies.New(d, currency)
}

func (h *Handler) dispatch(ctx context.Context, src eventSource) {
	events := src.Events()
	if len(events) == 0 {
		return
	}
	if err := h.bus.Publish(ctx, events...); err != nil {
		h.logger.Warn("failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err))
	}
	src.ClearEvents()
}

func snapshotCart(c *cart.Cart) salesforce.CartSnapshot {
	items := make([]salesforce.CartLineSnapshot, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, salesforce.CartLineSnapshot{
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity().Value(),
			UnitPrice:   item.UnitPrice().Amount().String(),
			Currency:    item.UnitPrice().Currency(),
		})
	}
	return salesforce.CartSnapshot{
		CartID:      c.ID(),
		CustomerID:  c.CustomerID(),
		Items:       items,
		TotalAmount: c.TotalAmount().Amount().String(),
		Currency:    c.Currency(),
	}
}
