package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-shop/internal/domain"
	"github.com/example/ec-shop/internal/domain/money"
)

// Order is the aggregate root for a customer order. The line set is fixed at
// creation; afterwards the order only progresses through its status state
// machine, optionally picking up a tracking number on shipment.
type Order struct {
	domain.Recorder

	id              string
	customerID      string
	lines           []*Line
	shippingAddress ShippingAddress
	status          Status
	currency        string
	trackingNumber  string
	createdAt       time.Time
	updatedAt       time.Time
}

// New creates a pending order from at least one line. Every line must carry
// the order's currency; a mismatch fails before any event is recorded.
func New(customerID string, lines []*Line, shippingAddress ShippingAddress, currency string) (*Order, error) {
	if customerID == "" {
		return nil, domain.NewValidationError("customer id is required")
	}
	if len(lines) == 0 {
		return nil, domain.NewValidationError("order must have at least one line item")
	}
	for _, line := range lines {
		if line.UnitPrice().Currency() != currency {
			return nil, domain.NewValidationError(
				"all order lines must have the order currency %s, got %s", currency, line.UnitPrice().Currency())
		}
	}

	now := time.Now()
	o := &Order{
		id:              uuid.New().String(),
		customerID:      customerID,
		lines:           lines,
		shippingAddress: shippingAddress,
		status:          StatusPending,
		currency:        currency,
		createdAt:       now,
		updatedAt:       now,
	}
	o.Record(NewOrderCreated(o.id, customerID, o.TotalAmount()))
	return o, nil
}

// Reconstitute rebuilds an order from persistence. No events are recorded.
func Reconstitute(id, customerID string, lines []*Line, shippingAddress ShippingAddress, status Status, currency, trackingNumber string, createdAt, updatedAt time.Time) *Order {
	return &Order{
		id:              id,
		customerID:      customerID,
		lines:           lines,
		shippingAddress: shippingAddress,
		status:          status,
		currency:        currency,
		trackingNumber:  trackingNumber,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (o *Order) ID() string                       { return o.id }
func (o *Order) CustomerID() string               { return o.customerID }
func (o *Order) ShippingAddress() ShippingAddress { return o.shippingAddress }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) Currency() string                 { return o.currency }
func (o *Order) TrackingNumber() string           { return o.trackingNumber }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }

// Lines returns the order lines in creation order.
func (o *Order) Lines() []*Line {
	out := make([]*Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Confirm moves the order from pending to confirmed.
func (o *Order) Confirm() error {
	if err := o.assertTransition(StatusConfirmed); err != nil {
		return err
	}
	o.status = StatusConfirmed
	o.Record(NewOrderConfirmed(o.id))
	o.touch()
	return nil
}

// Process moves the order from confirmed to processing.
func (o *Order) Process() error {
	if err := o.assertTransition(StatusProcessing); err != nil {
		return err
	}
	o.status = StatusProcessing
	o.touch()
	return nil
}

// Ship moves the order from processing to shipped and stores the optional
// tracking number.
func (o *Order) Ship(trackingNumber string) error {
	if err := o.assertTransition(StatusShipped); err != nil {
		return err
	}
	o.status = StatusShipped
	o.trackingNumber = trackingNumber
	o.Record(NewOrderShipped(o.id, trackingNumber))
	o.touch()
	return nil
}

// Deliver moves the order from shipped to delivered.
func (o *Order) Deliver() error {
	if err := o.assertTransition(StatusDelivered); err != nil {
		return err
	}
	o.status = StatusDelivered
	o.touch()
	return nil
}

// Cancel terminates the order. Only pending and confirmed orders can be
// cancelled; later stages fail with a business-rule error naming the status.
func (o *Order) Cancel(reason string) error {
	if !o.status.CanBeCancelled() {
		return domain.NewBusinessRuleError("cannot cancel order with status: %s", o.status)
	}
	o.status = StatusCancelled
	o.Record(NewOrderCancelled(o.id, reason))
	o.touch()
	return nil
}

// Subtotal sums line subtotals before discounts.
func (o *Order) Subtotal() money.Money {
	total := money.Zero(o.currency)
	for _, line := range o.lines {
		total, _ = total.Add(line.Subtotal()) // lines share the order currency
	}
	return total
}

// TotalDiscount sums line discounts.
func (o *Order) TotalDiscount() money.Money {
	total := money.Zero(o.currency)
	for _, line := range o.lines {
		total, _ = total.Add(line.Discount())
	}
	return total
}

// TotalAmount sums line totals after discounts.
func (o *Order) TotalAmount() money.Money {
	total := money.Zero(o.currency)
	for _, line := range o.lines {
		total, _ = total.Add(line.Total())
	}
	return total
}

// TotalItemCount sums quantities across all lines.
func (o *Order) TotalItemCount() int {
	count := 0
	for _, line := range o.lines {
		count += line.Quantity().Value()
	}
	return count
}

func (o *Order) assertTransition(target Status) error {
	if !o.status.CanTransitionTo(target) {
		return domain.NewInvalidOperationError(string(o.status),
			"cannot transition order from %s to %s", o.status, target)
	}
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now()
}
