package order

import (
	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderConfirmed = "OrderConfirmed"
	EventOrderShipped   = "OrderShipped"
	EventOrderCancelled = "OrderCancelled"
)

func NewOrderCreated(orderID, customerID string, total money.Money) domain.Event {
	return domain.NewEvent(orderID, EventOrderCreated, map[string]any{
		"customer_id":  customerID,
		"total_amount": total.Amount().String(),
		"currency":     total.Currency(),
	})
}

func NewOrderConfirmed(orderID string) domain.Event {
	return domain.NewEvent(orderID, EventOrderConfirmed, nil)
}

func NewOrderShipped(orderID, trackingNumber string) domain.Event {
	return domain.NewEvent(orderID, EventOrderShipped, map[string]any{
		"tracking_number": trackingNumber,
	})
}

func NewOrderCancelled(orderID, reason string) domain.Event {
	return domain.NewEvent(orderID, EventOrderCancelled, map[string]any{
		"reason": reason,
	})
}
