package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/order"
	"github.com/example/ec-shop/internal/domain/user"
	"github.com/example/ec-shop/internal/email"
)

// Mailer is the slice of the email service the notifier needs.
type Mailer interface {
	SendOrderConfirmation(to, orderID, total string, items []email.OrderItem) error
	SendShipmentNotice(to, orderID, trackingNumber string) error
}

// Handler turns order events from the event topic into customer emails.
// Missing aggregates are logged and skipped, not retried: the event stream
// must keep moving.
type Handler struct {
	mailer Mailer
	orders order.Repository
	users  user.Repository
	logger *zap.Logger
}

func NewHandler(mailer Mailer, orders order.Repository, users user.Repository, logger *zap.Logger) *Handler {
	return &Handler{mailer: mailer, orders: orders, users: users, logger: logger}
}

// HandleEvent processes one event from the topic.
func (h *Handler) HandleEvent(ctx context.Context, _, value []byte) error {
	var event domain.Event
	if err := json.Unmarshal(value, &event); err != nil {
		h.logger.Warn("failed to unmarshal event", zap.Error(err))
		return err
	}

	switch event.EventType {
	case order.EventOrderCreated:
		return h.handleOrderCreated(ctx, event)
	case order.EventOrderShipped:
		return h.handleOrderShipped(ctx, event)
	default:
		return nil
	}
}

func (h *Handler) handleOrderCreated(ctx context.Context, event domain.Event) error {
	o, u, ok := h.lookup(ctx, event.AggregateID)
	if !ok {
		return nil
	}

	items := make([]email.OrderItem, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		items = append(items, email.OrderItem{
			Name:      line.ProductName(),
			Quantity:  line.Quantity().Value(),
			UnitPrice: line.UnitPrice().String(),
			Subtotal:  line.Subtotal().String(),
		})
	}

	if err := h.mailer.SendOrderConfirmation(
		u.Email().Value(), o.ID(), o.TotalAmount().String(), items); err != nil {
		h.logger.Warn("failed to send order confirmation",
			zap.String("order_id", o.ID()),
			zap.Error(err))
		return err
	}

	h.logger.Info("order confirmation sent",
		zap.String("order_id", o.ID()),
		zap.String("customer_id", o.CustomerID()))
	return nil
}

func (h *Handler) handleOrderShipped(ctx context.Context, event domain.Event) error {
	o, u, ok := h.lookup(ctx, event.AggregateID)
	if !ok {
		return nil
	}

	if err := h.mailer.SendShipmentNotice(u.Email().Value(), o.ID(), o.TrackingNumber()); err != nil {
		h.logger.Warn("failed to send shipment notice",
			zap.String("order_id", o.ID()),
			zap.Error(err))
		return err
	}

	h.logger.Info("shipment notice sent",
		zap.String("order_id", o.ID()),
		zap.String("customer_id", o.CustomerID()))
	return nil
}

func (h *Handler) lookup(ctx context.Context, orderID string) (*order.Order, *user.User, bool) {
	o, err := h.orders.FindByID(ctx, orderID)
	if err != nil || o == nil {
		h.logger.Warn("order not found for notification", zap.String("order_id", orderID), zap.Error(err))
		return nil, nil, false
	}

	u, err := h.users.FindByID(ctx, o.CustomerID())
	if err != nil || u == nil {
		h.logger.Warn("customer not found for notification", zap.String("customer_id", o.CustomerID()), zap.Error(err))
		return nil, nil, false
	}
	return o, u, true
}
