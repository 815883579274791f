package orders

import "fmt"

// Status is the customer-visible lifecycle stage of an order.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusConfirmed      Status = "Confirmed"
	StatusPreparing      Status = "Preparing"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

// AllStatuses lists every recognized status, in lifecycle order. Used for
// validation and error messages only; no ordering is enforced between them.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// ParseStatus checks membership in the status set. Validity is membership
// only: any status may follow any other. The admin dashboard depends on
// being able to move an order backwards, so there is no adjacency table;
// the status log keeps the history for audit instead.
func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}
