package bus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-shop/internal/domain"
)

func TestInMemory_Publish(t *testing.T) {
	b := NewInMemory()
	ctx := context.Background()

	e1 := domain.NewEvent("cart-1", "CartCreated", nil)
	e2 := domain.NewEvent("cart-1", "ItemAdded", map[string]any{"product_id": "prod-1"})
	require.NoError(t, b.Publish(ctx, e1, e2))

	published := b.Published()
	require.Len(t, published, 2)
	assert.Equal(t, "CartCreated", published[0].EventType)
	assert.Equal(t, "ItemAdded", published[1].EventType)
}

func TestInMemory_Subscribe(t *testing.T) {
	b := NewInMemory()
	var seen []string
	b.Subscribe(func(_ context.Context, event domain.Event) {
		seen = append(seen, event.EventType)
	})

	require.NoError(t, b.Publish(context.Background(),
		domain.NewEvent("order-1", "OrderCreated", nil),
		domain.NewEvent("order-1", "OrderConfirmed", nil)))

	assert.Equal(t, []string{"OrderCreated", "OrderConfirmed"}, seen)
}

func TestInMemory_PublishedOfType(t *testing.T) {
	b := NewInMemory()
	ctx := context.Background()
	require.NoError(t, b.Publish(ctx, domain.NewEvent("cart-1", "ItemAdded", nil)))
	require.NoError(t, b.Publish(ctx, domain.NewEvent("cart-1", "ItemRemoved", nil)))
	require.NoError(t, b.Publish(ctx, domain.NewEvent("cart-2", "ItemAdded", nil)))

	added := b.PublishedOfType("ItemAdded")
	require.Len(t, added, 2)
	assert.Equal(t, "cart-1", added[0].AggregateID)
	assert.Equal(t, "cart-2", added[1].AggregateID)
	assert.Empty(t, b.PublishedOfType("CartCleared"))
}
