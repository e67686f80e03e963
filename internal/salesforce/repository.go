package salesforce

import "context"

// ContextRepository persists cart contexts. Implementations may expire
// entries on their own (e.g. TTL-keyed stores); a nil context with a nil
// error means absent or lapsed.
type ContextRepository interface {
	Save(ctx context.Context, c *CartContext) error
	FindByID(ctx context.Context, id string) (*CartContext, error)
	FindActiveByCustomerID(ctx context.Context, customerID string) (*CartContext, error)
	Delete(ctx context.Context, id string) error
}
