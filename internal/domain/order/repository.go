package order

import "context"

// Repository persists orders. Implementations must round-trip the status
// enum, money values and quantities losslessly. A nil order with a nil
// error means absent.
type Repository interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]*Order, error)
	Delete(ctx context.Context, id string) error
}
