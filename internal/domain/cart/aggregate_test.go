package cart

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
)

func cad(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.NewFromFloat(amount, "CAD")
	require.NoError(t, err)
	return m
}

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := New("customer-1", "CAD")
	require.NoError(t, err)
	c.ClearEvents()
	return c
}

func eventTypes(events []domain.Event) []string {
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.EventType
	}
	return types
}

func TestNew(t *testing.T) {
	c, err := New("customer-1", "CAD")

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID())
	assert.Equal(t, "customer-1", c.CustomerID())
	assert.Equal(t, StatusActive, c.Status())
	assert.Equal(t, "CAD", c.Currency())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, []string{EventCartCreated}, eventTypes(c.Events()))
}

func TestNew_RequiresCustomerAndCurrency(t *testing.T) {
	_, err := New("", "CAD")
	require.Error(t, err)

	_, err = New("customer-1", "")
	require.Error(t, err)
}

func TestAddItem(t *testing.T) {
	c := newTestCart(t)

	err := c.AddItem("prod-1", "Widget", 2, cad(t, 10.00))

	require.NoError(t, err)
	require.Len(t, c.Items(), 1)
	item := c.Items()[0]
	assert.Equal(t, "prod-1", item.ProductID())
	assert.Equal(t, 2, item.Quantity().Value())
	assert.Equal(t, "20.00 CAD", c.TotalAmount().String())
	assert.Equal(t, []string{EventItemAdded}, eventTypes(c.Events()))
}

func TestAddItem_MergesDuplicateProduct(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.AddItem("prod-1", "Widget", 2, cad(t, 10.00)))
	require.NoError(t, c.AddItem("prod-1", "Widget", 3, cad(t, 10.00)))

	require.Len(t, c.Items(), 1)
	assert.Equal(t, 5, c.Items()[0].Quantity().Value())
	assert.Equal(t, 5, c.TotalItemCount())
	assert.Equal(t, []string{EventItemAdded, EventItemAdded}, eventTypes(c.Events()))
}

func TestAddItem_CurrencyMismatch(t *testing.T) {
	c := newTestCart(t)
	usd, err := money.NewFromFloat(10, "USD")
	require.NoError(t, err)

	err = c.AddItem("prod-1", "Widget", 1, usd)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Events())
}

func TestAddItem_CapacityLimit(t *testing.T) {
	c := newTestCart(t)
	for i := 0; i < MaxDistinctItems; i++ {
		id := fmt.Sprintf("prod-%d", i)
		require.NoError(t, c.AddItem(id, "Product "+id, 1, cad(t, 1.00)))
	}

	err := c.AddItem("prod-overflow", "One Too Many", 1, cad(t, 1.00))

	var berr *domain.BusinessRuleError
	require.ErrorAs(t, err, &berr)
	assert.Len(t, c.Items(), MaxDistinctItems)
}

func TestAddItem_ExistingProductIgnoresCapacity(t *testing.T) {
	c := newTestCart(t)
	for i := 0; i < MaxDistinctItems; i++ {
		id := fmt.Sprintf("prod-%d", i)
		require.NoError(t, c.AddItem(id, "Product "+id, 1, cad(t, 1.00)))
	}

	// The cap limits distinct products, not total units.
	require.NoError(t, c.AddItem("prod-0", "Product prod-0", 1, cad(t, 1.00)))
	assert.Equal(t, 2, c.Items()[0].Quantity().Value())
}

func TestRemoveItem(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem("prod-1", "Widget", 1, cad(t, 10.00)))
	c.ClearEvents()

	require.NoError(t, c.RemoveItem("prod-1"))

	assert.True(t, c.IsEmpty())
	assert.Equal(t, []string{EventItemRemoved}, eventTypes(c.Events()))
}

func TestRemoveItem_NotInCart(t *testing.T) {
	c := newTestCart(t)

	err := c.RemoveItem("prod-missing")

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateItemQuantity(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem("prod-1", "Widget", 2, cad(t, 10.00)))

	require.NoError(t, c.UpdateItemQuantity("prod-1", 7))

	assert.Equal(t, 7, c.Items()[0].Quantity().Value())
}

func TestUpdateItemQuantity_InvalidValue(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem("prod-1", "Widget", 2, cad(t, 10.00)))

	require.Error(t, c.UpdateItemQuantity("prod-1", 0))
	assert.Equal(t, 2, c.Items()[0].Quantity().Value())
}

func TestClear(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem("prod-1", "Widget", 2, cad(t, 10.00)))
	require.NoError(t, c.AddItem("prod-2", "Gadget", 1, cad(t, 5.00)))
	c.ClearEvents()

	require.NoError(t, c.Clear())

	assert.True(t, c.IsEmpty())
	assert.Equal(t, StatusActive, c.Status())
	assert.Equal(t, []string{EventCartCleared}, eventTypes(c.Events()))
}

func TestCheckout(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem("prod-1", "Widget", 3, cad(t, 19.99)))
	c.ClearEvents()

	require.NoError(t, c.Checkout())

	assert.Equal(t, StatusCheckedOut, c.Status())
	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventCartCheckedOut, events[0].EventType)
	assert.Equal(t, "59.97", events[0].EventData["total_amount"])
}

func TestCheckout_EmptyCart(t *testing.T) {
	c := newTestCart(t)

	err := c.Checkout()

	var berr *domain.BusinessRuleError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, StatusActive, c.Status())
}

func TestMutationsAfterCheckout(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem("prod-1", "Widget", 1, cad(t, 10.00)))
	require.NoError(t, c.Checkout())
	c.ClearEvents()

	var ierr *domain.InvalidOperationError

	err := c.AddItem("prod-2", "Gadget", 1, cad(t, 5.00))
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, string(StatusCheckedOut), ierr.State)

	require.ErrorAs(t, c.RemoveItem("prod-1"), &ierr)
	require.ErrorAs(t, c.UpdateItemQuantity("prod-1", 2), &ierr)
	require.ErrorAs(t, c.Clear(), &ierr)
	require.ErrorAs(t, c.Checkout(), &ierr)
	assert.Empty(t, c.Events())
}

func TestMarkAsAbandoned(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.MarkAsAbandoned())
	assert.Equal(t, StatusAbandoned, c.Status())

	var ierr *domain.InvalidOperationError
	require.ErrorAs(t, c.MarkAsAbandoned(), &ierr)
}

func TestTotals(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem("prod-1", "Widget", 2, cad(t, 10.00)))
	require.NoError(t, c.AddItem("prod-2", "Gadget", 1, cad(t, 4.50)))

	assert.Equal(t, "24.50 CAD", c.Subtotal().String())
	assert.Equal(t, "0.00 CAD", c.TotalDiscount().String())
	assert.Equal(t, "24.50 CAD", c.TotalAmount().String())
	assert.Equal(t, 3, c.TotalItemCount())
	assert.True(t, c.HasProduct("prod-2"))
	assert.False(t, c.HasProduct("prod-3"))
}

func TestReconstitute(t *testing.T) {
	now := time.Now()
	qty, err := domain.NewQuantity(2)
	require.NoError(t, err)
	item := ReconstituteItem("item-1", "prod-1", "Widget", qty,
		cad(t, 10.00), money.Zero("CAD"), now, now)

	c := Reconstitute("cart-1", "customer-1", []*Item{item}, StatusCheckedOut, "CAD", now, now)

	assert.Equal(t, "cart-1", c.ID())
	assert.Equal(t, StatusCheckedOut, c.Status())
	assert.Equal(t, "20.00 CAD", c.TotalAmount().String())
	assert.Empty(t, c.Events())
}
