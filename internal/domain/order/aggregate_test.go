package order

import (
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

func testAddress(t *testing.T) ShippingAddress {
	t.Helper()
	addr, err := NewShippingAddress("123 Main St", "Toronto", "ON", "M5V 1A1", "Canada")
	require.NoError(t, err)
	return addr
}

func testLine(t *testing.T, productID string, quantity int, unitPrice money.Money) *Line {
	t.Helper()
	line, err := NewLine(productID, "Product "+productID, quantity, unitPrice, money.Money{})
	require.NoError(t, err)
	return line
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := New("customer-1", []*Line{testLine(t, "prod-1", 2, cad(t, 10.00))}, testAddress(t), "CAD")
	require.NoError(t, err)
	o.ClearEvents()
	return o
}

func TestNew(t *testing.T) {
	lines := []*Line{
		testLine(t, "prod-1", 2, cad(t, 10.00)),
		testLine(t, "prod-2", 1, cad(t, 4.50)),
	}

	o, err := New("customer-1", lines, testAddress(t), "CAD")

	require.NoError(t, err)
	assert.NotEmpty(t, o.ID())
	assert.Equal(t, StatusPending, o.Status())
	assert.Equal(t, "24.50 CAD", o.TotalAmount().String())
	assert.Equal(t, 3, o.TotalItemCount())

	events := o.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderCreated, events[0].EventType)
	assert.Equal(t, "24.5", events[0].EventData["total_amount"])
}

func TestNew_Validation(t *testing.T) {
	addr := testAddress(t)
	line := testLine(t, "prod-1", 1, cad(t, 10.00))

	_, err := New("", []*Line{line}, addr, "CAD")
	require.Error(t, err)

	_, err = New("customer-1", nil, addr, "CAD")
	require.Error(t, err)
}

func TestNew_CurrencyMismatchRecordsNoEvents(t *testing.T) {
	usd, err := money.NewFromFloat(10, "USD")
	require.NoError(t, err)
	lines := []*Line{
		testLine(t, "prod-1", 1, cad(t, 10.00)),
		testLine(t, "prod-2", 1, usd),
	}

	o, err := New("customer-1", lines, testAddress(t), "CAD")

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, o)
}

func TestLifecycle(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.Confirm())
	assert.Equal(t, StatusConfirmed, o.Status())

	require.NoError(t, o.Process())
	assert.Equal(t, StatusProcessing, o.Status())

	require.NoError(t, o.Ship("TRACK-123"))
	assert.Equal(t, StatusShipped, o.Status())
	assert.Equal(t, "TRACK-123", o.TrackingNumber())

	require.NoError(t, o.Deliver())
	assert.Equal(t, StatusDelivered, o.Status())

	types := make([]string, 0, len(o.Events()))
	for _, e := range o.Events() {
		types = append(types, e.EventType)
	}
	assert.Equal(t, []string{EventOrderConfirmed, EventOrderShipped}, types)
}

func TestSkippedTransitions(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Order) error
	}{
		{"process before confirm", (*Order).Process},
		{"ship before confirm", func(o *Order) error { return o.Ship("") }},
		{"deliver before confirm", (*Order).Deliver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(t)

			err := tt.op(o)

			var ierr *domain.InvalidOperationError
			require.ErrorAs(t, err, &ierr)
			assert.Equal(t, string(StatusPending), ierr.State)
			assert.Equal(t, StatusPending, o.Status())
		})
	}
}

func TestCancel_Pending(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.Cancel("changed my mind"))

	assert.Equal(t, StatusCancelled, o.Status())
	events := o.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderCancelled, events[0].EventType)
	assert.Equal(t, "changed my mind", events[0].EventData["reason"])
}

func TestCancel_Confirmed(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Confirm())

	require.NoError(t, o.Cancel("out of stock"))
	assert.Equal(t, StatusCancelled, o.Status())
}

func TestCancel_TooLate(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.Process())

	err := o.Cancel("too late")

	var berr *domain.BusinessRuleError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, StatusProcessing, o.Status())
}

func TestTerminalStates(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Cancel("done"))

	var ierr *domain.InvalidOperationError
	require.ErrorAs(t, o.Confirm(), &ierr)

	var berr *domain.BusinessRuleError
	require.ErrorAs(t, o.Cancel("again"), &berr)
}

func TestStatusCanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusShipped))
	assert.False(t, StatusShipped.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("processing")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, s)

	_, err = ParseStatus("bogus")
	require.Error(t, err)
}

func TestNewShippingAddress_Validation(t *testing.T) {
	tests := []struct {
		name                                   string
		street, city, state, zipCode, country string
	}{
		{"empty street", "", "Toronto", "ON", "M5V 1A1", "Canada"},
		{"blank city", "123 Main St", "   ", "ON", "M5V 1A1", "Canada"},
		{"empty country", "123 Main St", "Toronto", "ON", "M5V 1A1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShippingAddress(tt.street, tt.city, tt.state, tt.zipCode, tt.country)
			require.Error(t, err)
		})
	}
}

func TestLineTotals(t *testing.T) {
	discount := cad(t, 2.00)
	line, err := NewLine("prod-1", "Widget", 3, cad(t, 10.00), discount)
	require.NoError(t, err)

	assert.Equal(t, "30.00 CAD", line.Subtotal().String())
	assert.Equal(t, "28.00 CAD", line.Total().String())
}

func TestLineApplyDiscount(t *testing.T) {
	line, err := NewLine("prod-1", "Widget", 2, cad(t, 10.00), money.Money{})
	require.NoError(t, err)

	require.NoError(t, line.ApplyDiscount(cad(t, 20.00)))
	assert.Equal(t, "0.00 CAD", line.Total().String())

	var verr *domain.ValidationError
	err = line.ApplyDiscount(cad(t, 20.01))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "20.00 CAD", line.Discount().String())

	_, err = NewLine("prod-1", "Widget", 1, cad(t, 10.00), cad(t, 15.00))
	require.ErrorAs(t, err, &verr)
}

func TestReconstitute(t *testing.T) {
	now := time.Now()
	qty, err := domain.NewQuantity(2)
	require.NoError(t, err)
	line := ReconstituteLine("line-1", "prod-1", "Widget", qty,
		cad(t, 10.00), money.Zero("CAD"), now)

	o := Reconstitute("order-1", "customer-1", []*Line{line}, testAddress(t),
		StatusShipped, "CAD", "TRACK-9", now, now)

	assert.Equal(t, StatusShipped, o.Status())
	assert.Equal(t, "TRACK-9", o.TrackingNumber())
	assert.Equal(t, "20.00 CAD", o.TotalAmount().String())
	assert.Empty(t, o.Events())

	require.NoError(t, o.Deliver())
	assert.Equal(t, StatusDelivered, o.Status())
}
