package cart

import (
	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
)

const (
	EventCartCreated    = "CartCreated"
	EventItemAdded      = "ItemAdded"
	EventItemRemoved    = "ItemRemoved"
	EventCartCleared    = "CartCleared"
	EventCartCheckedOut = "CartCheckedOut"
)

func NewCartCreated(cartID, customerID string) domain.Event {
	return domain.NewEvent(cartID, EventCartCreated, map[string]any{
		"customer_id": customerID,
	})
}

func NewItemAdded(cartID, productID, productName string, quantity int, unitPrice money.Money) domain.Event {
	return domain.NewEvent(cartID, EventItemAdded, map[string]any{
		"product_id":   productID,
		"product_name": productName,
		"quantity":     quantity,
		"unit_price":   unitPrice.Amount().String(),
		"currency":     unitPrice.Currency(),
	})
}

func NewItemRemoved(cartID, productID string) domain.Event {
	return domain.NewEvent(cartID, EventItemRemoved, map[string]any{
		"product_id": productID,
	})
}

func NewCartCleared(cartID, customerID string) domain.Event {
	return domain.NewEvent(cartID, EventCartCleared, map[string]any{
		"customer_id": customerID,
	})
}

func NewCartCheckedOut(cartID, customerID string, total money.Money) domain.Event {
	return domain.NewEvent(cartID, EventCartCheckedOut, map[string]any{
		"customer_id":  customerID,
		"total_amount": total.Amount().String(),
		"currency":     total.Currency(),
	})
}
