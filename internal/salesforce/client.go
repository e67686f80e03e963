package salesforce

import (
	"context"
	"errors"
	"sync"
)

var ErrContextNotFound = errors.New("salesforce context not found")

// CartLineSnapshot is one line of a cart as sent to Salesforce.
type CartLineSnapshot struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Currency    string `json:"currency"`
}

// CartSnapshot is the cart payload synced to Salesforce.
type CartSnapshot struct {
	CartID      string             `json:"cart_id"`
	CustomerID  string             `json:"customer_id"`
	Items       []CartLineSnapshot `json:"items"`
	TotalAmount string             `json:"total_amount"`
	Currency    string             `json:"currency"`
}

// Client is the outbound Salesforce contract. The real integration lives
// behind this interface; the shop only ever talks to the contract.
type Client interface {
	CreateContext(ctx context.Context, customerID string) (*CartContext, error)
	SyncCart(ctx context.Context, sfCtx *CartContext, snapshot CartSnapshot) error
	ValidateContext(ctx context.Context, contextID string) (bool, error)
}

// StubClient is an in-memory stand-in for the Salesforce API, usable in
// tests and local runs. SetSyncError injects a failure for the next syncs.
type StubClient struct {
	mu       sync.RWMutex
	ttl      TTL
	contexts map[string]*CartContext // contextID -> context
	synced   map[string]CartSnapshot // cartID -> last synced snapshot
	syncErr  error
}

func NewStubClient() *StubClient {
	return &StubClient{
		contexts: make(map[string]*CartContext),
		synced:   make(map[string]CartSnapshot),
	}
}

// SetTTL overrides the lifespan of contexts created from now on.
func (s *StubClient) SetTTL(ttl TTL) {
	s.mu.Lock()
	s.ttl = ttl
	s.mu.Unlock()
}

func (s *StubClient) CreateContext(_ context.Context, customerID string) (*CartContext, error) {
	s.mu.RLock()
	ttl := s.ttl
	s.mu.RUnlock()

	sfCtx, err := NewCartContext(customerID, "", ttl)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.contexts[sfCtx.ContextID()] = sfCtx
	s.mu.Unlock()

	return sfCtx, nil
}

func (s *StubClient) SyncCart(_ context.Context, sfCtx *CartContext, snapshot CartSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.syncErr != nil {
		return s.syncErr
	}
	if _, ok := s.contexts[sfCtx.ContextID()]; !ok {
		return ErrContextNotFound
	}
	s.synced[snapshot.CartID] = snapshot
	return nil
}

func (s *StubClient) ValidateContext(_ context.Context, contextID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sfCtx, ok := s.contexts[contextID]
	if !ok {
		return false, nil
	}
	return sfCtx.Status() == ContextActive, nil
}

// SyncedCart returns the last snapshot synced for a cart, if any.
func (s *StubClient) SyncedCart(cartID string) (CartSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.synced[cartID]
	return snap, ok
}

// SetSyncError makes subsequent SyncCart calls fail with err; pass nil to reset.
func (s *StubClient) SetSyncError(err error) {
	s.mu.Lock()
	s.syncErr = err
	s.mu.Unlock()
}
