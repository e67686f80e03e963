package order

import "github.com/example/ec-shop/internal/domain"

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// validTransitions defines the allowed state machine:
// pending -> confirmed -> processing -> shipped -> delivered, with
// cancellation as a side exit from pending and confirmed only.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {}, // terminal state
	StatusCancelled:  {}, // terminal state
}

// CanTransitionTo checks whether the state machine allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanBeCancelled reports whether cancellation is still available. Only
// pending and confirmed orders may be cancelled; this is a business rule,
// not an arbitrary state restriction.
func (s Status) CanBeCancelled() bool {
	return s == StatusPending || s == StatusConfirmed
}

var validStatuses = map[Status]struct{}{
	StatusPending:    {},
	StatusConfirmed:  {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ParseStatus converts a stored string back into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validStatuses[status]; !ok {
		return "", domain.NewValidationError("invalid order status: %s", s)
	}
	return status, nil
}
