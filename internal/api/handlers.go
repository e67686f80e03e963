package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/example/ec-shop/internal/api/middleware"
	"github.com/example/ec-shop/internal/command"
	"github.com/example/ec-shop/internal/domain/product"
	"github.com/example/ec-shop/internal/query"
)

// Handlers serves the shop's HTTP surface, translating requests into
// commands and queries.
type Handlers struct {
	cmd    *command.Handler
	query  *query.Handler
	logger *zap.Logger
}

func NewHandlers(cmd *command.Handler, queryHandler *query.Handler, logger *zap.Logger) *Handlers {
	return &Handlers{cmd: cmd, query: queryHandler, logger: logger}
}

// Product handlers

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.CreateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.cmd.CreateProduct(r.Context(), cmd)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, query.NewProductView(p))
}

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.query.ListProducts(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, "query parameter q is required", http.StatusBadRequest)
		return
	}

	products, err := h.query.SearchProducts(r.Context(), q)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.query.ListProductsByCategory(r.Context(), r.PathValue("slug"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.query.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateProduct
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	cmd.ProductID = r.PathValue("id")

	p, err := h.cmd.UpdateProduct(r.Context(), cmd)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewProductView(p))
}

func (h *Handlers) UpdateProductPrice(w http.ResponseWriter, r *http.Request) {
	var cmd command.UpdateProductPrice
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	cmd.ProductID = r.PathValue("id")

	p, err := h.cmd.UpdateProductPrice(r.Context(), cmd)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewProductView(p))
}

func (h *Handlers) IncreaseStock(w http.ResponseWriter, r *http.Request) {
	h.adjustStock(w, r, h.cmd.IncreaseStock)
}

func (h *Handlers) DecreaseStock(w http.ResponseWriter, r *http.Request) {
	h.adjustStock(w, r, h.cmd.DecreaseStock)
}

func (h *Handlers) ActivateProduct(w http.ResponseWriter, r *http.Request) {
	h.setProductActive(w, r, true)
}

func (h *Handlers) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	h.setProductActive(w, r, false)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	cmd := command.DeleteProduct{ProductID: r.PathValue("id")}
	if err := h.cmd.DeleteProduct(r.Context(), cmd); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

// Cart handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.query.GetActiveCart(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.cmd.AddItemToCart(r.Context(), command.AddItemToCart{
		CustomerID: middleware.GetUserID(r.Context()),
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewCartView(c))
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.cmd.UpdateCartItem(r.Context(), command.UpdateCartItem{
		CustomerID: middleware.GetUserID(r.Context()),
		ProductID:  r.PathValue("productID"),
		Quantity:   req.Quantity,
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewCartView(c))
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.cmd.RemoveItemFromCart(r.Context(), command.RemoveItemFromCart{
		CustomerID: middleware.GetUserID(r.Context()),
		ProductID:  r.PathValue("productID"),
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewCartView(c))
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cmd.ClearCart(r.Context(), command.ClearCart{
		CustomerID: middleware.GetUserID(r.Context()),
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewCartView(c))
}

// SyncCart pushes the active cart to Salesforce.
func (h *Handlers) SyncCart(w http.ResponseWriter, r *http.Request) {
	sfCtx, err := h.cmd.SyncCartToSalesforce(r.Context(), command.SyncCartToSalesforce{
		CustomerID: middleware.GetUserID(r.Context()),
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"context_id":        sfCtx.ContextID(),
		"status":            string(sfCtx.Status()),
		"remaining_seconds": sfCtx.TTL().RemainingSeconds(sfCtx.LastAccessedAt(), time.Now()),
	})
}

// Order handlers

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CartID   string                  `json:"cart_id"`
		Shipping command.ShippingDetails `json:"shipping"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	o, err := h.cmd.CreateOrder(r.Context(), command.CreateOrder{
		CustomerID: middleware.GetUserID(r.Context()),
		CartID:     req.CartID,
		Shipping:   req.Shipping,
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, query.NewOrderView(o))
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.query.ListOrdersByCustomer(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.query.GetOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	// Customers see only their own orders; managers see all.
	if o.CustomerID != middleware.GetUserID(r.Context()) && !h.isManager(r) {
		respondError(w, "forbidden", http.StatusForbidden)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *Handlers) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, func(id string) (any, error) {
		o, err := h.cmd.ConfirmOrder(r.Context(), command.ConfirmOrder{OrderID: id})
		if err != nil {
			return nil, err
		}
		return query.NewOrderView(o), nil
	})
}

func (h *Handlers) ProcessOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, func(id string) (any, error) {
		o, err := h.cmd.ProcessOrder(r.Context(), command.ProcessOrder{OrderID: id})
		if err != nil {
			return nil, err
		}
		return query.NewOrderView(o), nil
	})
}

func (h *Handlers) ShipOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackingNumber string `json:"tracking_number"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	h.orderTransition(w, r, func(id string) (any, error) {
		o, err := h.cmd.ShipOrder(r.Context(), command.ShipOrder{OrderID: id, TrackingNumber: req.TrackingNumber})
		if err != nil {
			return nil, err
		}
		return query.NewOrderView(o), nil
	})
}

func (h *Handlers) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	h.orderTransition(w, r, func(id string) (any, error) {
		o, err := h.cmd.DeliverOrder(r.Context(), command.DeliverOrder{OrderID: id})
		if err != nil {
			return nil, err
		}
		return query.NewOrderView(o), nil
	})
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	o, err := h.query.GetOrder(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	if o.CustomerID != middleware.GetUserID(r.Context()) && !h.isManager(r) {
		respondError(w, "forbidden", http.StatusForbidden)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	cancelled, err := h.cmd.CancelOrder(r.Context(), command.CancelOrder{OrderID: id, Reason: req.Reason})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewOrderView(cancelled))
}

// Helpers

func (h *Handlers) adjustStock(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, cmd command.AdjustStock) (*product.Product, error)) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := op(r.Context(), command.AdjustStock{ProductID: r.PathValue("id"), Quantity: req.Quantity})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewProductView(p))
}

func (h *Handlers) setProductActive(w http.ResponseWriter, r *http.Request, active bool) {
	p, err := h.cmd.SetProductActive(r.Context(), command.SetProductActive{
		ProductID: r.PathValue("id"),
		Active:    active,
	})
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, query.NewProductView(p))
}

func (h *Handlers) orderTransition(w http.ResponseWriter, r *http.Request, op func(id string) (any, error)) {
	view, err := op(r.PathValue("id"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) isManager(r *http.Request) bool {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		return false
	}
	return claims.HasAnyRole("admin", "order-manager")
}
