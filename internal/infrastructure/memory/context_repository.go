package memory

import (
	"context"
	"sync"
	"time"

	"github.com/example/ec-shop/internal/salesforce"
)

type contextRecord struct {
	id             string
	contextID      string
	customerID     string
	ttl            salesforce.TTL
	status         salesforce.ContextStatus
	accountID      string
	opportunityID  string
	lastAccessedAt time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// ContextRepository keeps Salesforce cart contexts in memory, keyed by the
// Salesforce context ID.
type ContextRepository struct {
	mu       sync.RWMutex
	contexts map[string]contextRecord
}

func NewContextRepository() *ContextRepository {
	return &ContextRepository{contexts: make(map[string]contextRecord)}
}

func (r *ContextRepository) Save(_ context.Context, c *salesforce.CartContext) error {
	rec := contextRecord{
		id:             c.ID(),
		contextID:      c.ContextID(),
		customerID:     c.CustomerID(),
		ttl:            c.TTL(),
		status:         c.Status(),
		accountID:      c.AccountID(),
		opportunityID:  c.OpportunityID(),
		lastAccessedAt: c.LastAccessedAt(),
		createdAt:      c.CreatedAt(),
		updatedAt:      c.UpdatedAt(),
	}

	r.mu.Lock()
	r.contexts[rec.contextID] = rec
	r.mu.Unlock()
	return nil
}

func (r *ContextRepository) FindByID(_ context.Context, id string) (*salesforce.CartContext, error) {
	r.mu.RLock()
	rec, ok := r.contexts[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return restoreContext(rec), nil
}

func (r *ContextRepository) FindActiveByCustomerID(_ context.Context, customerID string) (*salesforce.CartContext, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.contexts {
		if rec.customerID == customerID && rec.status == salesforce.ContextActive {
			return restoreContext(rec), nil
		}
	}
	return nil, nil
}

func (r *ContextRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.contexts, id)
	r.mu.Unlock()
	return nil
}

func restoreContext(rec contextRecord) *salesforce.CartContext {
	return salesforce.ReconstituteCartContext(
		rec.id, rec.contextID, rec.customerID, rec.ttl, rec.status, rec.accountID,
		rec.opportunityID, rec.lastAccessedAt, rec.createdAt, rec.updatedAt)
}
