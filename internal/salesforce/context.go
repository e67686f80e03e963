package salesforce

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-shop/internal/domain"
)

type ContextStatus string

const (
	ContextActive      ContextStatus = "active"
	ContextExpired     ContextStatus = "expired"
	ContextInvalidated ContextStatus = "invalidated"
)

// CartContext is a short-lived session handle for Salesforce cart
// operations. It expires after its TTL counted from the last access.
type CartContext struct {
	id             string
	contextID      string
	customerID     string
	ttl            TTL
	status         ContextStatus
	accountID      string
	opportunityID  string
	lastAccessedAt time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCartContext creates an active context. A zero TTL selects the default.
func NewCartContext(customerID, accountID string, ttl TTL) (*CartContext, error) {
	if customerID == "" {
		return nil, domain.NewValidationError("customer id is required")
	}
	if ttl.Seconds() == 0 {
		ttl, _ = NewTTL(0) // default lifespan
	}

	now := time.Now()
	return &CartContext{
		id:             uuid.New().String(),
		contextID:      "sf-ctx-" + uuid.New().String(),
		customerID:     customerID,
		ttl:            ttl,
		status:         ContextActive,
		accountID:      accountID,
		lastAccessedAt: now,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstituteCartContext rebuilds a context from persistence.
func ReconstituteCartContext(id, contextID, customerID string, ttl TTL, status ContextStatus, accountID, opportunityID string, lastAccessedAt, createdAt, updatedAt time.Time) *CartContext {
	return &CartContext{
		id:             id,
		contextID:      contextID,
		customerID:     customerID,
		ttl:            ttl,
		status:         status,
		accountID:      accountID,
		opportunityID:  opportunityID,
		lastAccessedAt: lastAccessedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (c *CartContext) ID() string                { return c.id }
func (c *CartContext) ContextID() string         { return c.contextID }
func (c *CartContext) CustomerID() string        { return c.customerID }
func (c *CartContext) TTL() TTL                  { return c.ttl }
func (c *CartContext) Status() ContextStatus     { return c.status }
func (c *CartContext) AccountID() string         { return c.accountID }
func (c *CartContext) OpportunityID() string     { return c.opportunityID }
func (c *CartContext) LastAccessedAt() time.Time { return c.lastAccessedAt }
func (c *CartContext) CreatedAt() time.Time      { return c.createdAt }
func (c *CartContext) UpdatedAt() time.Time      { return c.updatedAt }

// HasExpired reports whether the context can no longer be used. The TTL
// counts from the last access, so touching a context keeps it alive.
func (c *CartContext) HasExpired(now time.Time) bool {
	if c.status == ContextExpired || c.status == ContextInvalidated {
		return true
	}
	return c.ttl.HasExpired(c.lastAccessedAt, now)
}

// Touch refreshes the last-access time of an active context.
func (c *CartContext) Touch(now time.Time) error {
	if c.HasExpired(now) {
		return domain.NewInvalidOperationError(string(c.status),
			"cannot refresh expired salesforce context %s", c.contextID)
	}
	c.lastAccessedAt = now
	c.updatedAt = now
	return nil
}

// MarkExpired transitions an active context to expired.
func (c *CartContext) MarkExpired() {
	if c.status == ContextActive {
		c.status = ContextExpired
		c.updatedAt = time.Now()
	}
}

// Invalidate withdraws the context regardless of remaining TTL.
func (c *CartContext) Invalidate() {
	c.status = ContextInvalidated
	c.updatedAt = time.Now()
}

// AttachOpportunity links the Salesforce opportunity created for this cart.
func (c *CartContext) AttachOpportunity(opportunityID string) {
	c.opportunityID = opportunityID
	c.updatedAt = time.Now()
}
