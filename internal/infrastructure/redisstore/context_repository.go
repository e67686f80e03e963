package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/ec-shop/internal/salesforce"
)

const (
	contextKeyPrefix  = "sf:ctx:"
	customerKeyPrefix = "sf:customer:"
)

type contextRecord struct {
	ID             string    `json:"id"`
	ContextID      string    `json:"context_id"`
	CustomerID     string    `json:"customer_id"`
	TTLSeconds     int       `json:"ttl_seconds"`
	Status         string    `json:"status"`
	AccountID      string    `json:"account_id,omitempty"`
	OpportunityID  string    `json:"opportunity_id,omitempty"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContextRepository keeps Salesforce cart contexts in Redis. Keys carry the
// context TTL, so expiry needs no sweeper: a lapsed context simply vanishes
// and reads report it absent.
type ContextRepository struct {
	client *redis.Client
}

func NewContextRepository(client *redis.Client) *ContextRepository {
	return &ContextRepository{client: client}
}

func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (r *ContextRepository) Save(ctx context.Context, c *salesforce.CartContext) error {
	rec := contextRecord{
		ID:             c.ID(),
		ContextID:      c.ContextID(),
		CustomerID:     c.CustomerID(),
		TTLSeconds:     c.TTL().Seconds(),
		Status:         string(c.Status()),
		AccountID:      c.AccountID(),
		OpportunityID:  c.OpportunityID(),
		LastAccessedAt: c.LastAccessedAt(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if c.Status() != salesforce.ContextActive {
		// Withdrawn contexts are removed rather than kept around to rot.
		return r.Delete(ctx, c.ContextID())
	}

	remaining := time.Duration(c.TTL().RemainingSeconds(c.LastAccessedAt(), time.Now())) * time.Second
	if remaining <= 0 {
		return r.Delete(ctx, c.ContextID())
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, contextKeyPrefix+c.ContextID(), data, remaining)
	pipe.Set(ctx, customerKeyPrefix+c.CustomerID(), c.ContextID(), remaining)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *ContextRepository) FindByID(ctx context.Context, id string) (*salesforce.CartContext, error) {
	data, err := r.client.Get(ctx, contextKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return restore(data)
}

func (r *ContextRepository) FindActiveByCustomerID(ctx context.Context, customerID string) (*salesforce.CartContext, error) {
	contextID, err := r.client.Get(ctx, customerKeyPrefix+customerID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, contextID)
}

func (r *ContextRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, contextKeyPrefix+id)
	if existing != nil {
		pipe.Del(ctx, customerKeyPrefix+existing.CustomerID())
	}
	_, err = pipe.Exec(ctx)
	return err
}

func restore(data []byte) (*salesforce.CartContext, error) {
	var rec contextRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	ttl, err := salesforce.NewTTL(rec.TTLSeconds)
	if err != nil {
		return nil, err
	}

	return salesforce.ReconstituteCartContext(
		rec.ID, rec.ContextID, rec.CustomerID, ttl, salesforce.ContextStatus(rec.Status),
		rec.AccountID, rec.OpportunityID, rec.LastAccessedAt, rec.CreatedAt, rec.UpdatedAt), nil
}
