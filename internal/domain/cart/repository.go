package cart

import "context"

// Repository persists carts. Implementations must round-trip every value
// object losslessly: currency, quantity bounds and status survive a
// save/load cycle unchanged. A nil cart with a nil error means absent.
type Repository interface {
	Save(ctx context.Context, c *Cart) error
	FindByID(ctx context.Context, id string) (*Cart, error)
	FindActiveByCustomerID(ctx context.Context, customerID string) (*Cart, error)
	FindAllByCustomerID(ctx context.Context, customerID string) ([]*Cart, error)
	Delete(ctx context.Context, id string) error
}
