package orders

import "errors"

var (
	// ErrInvalidStatus means the requested value is not in the status set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrNotFound means the order id is unknown to the store.
	ErrNotFound = errors.New("order not found")

	// ErrUnauthorized means the requester may not modify orders.
	ErrUnauthorized = errors.New("not allowed to modify orders")

	// ErrPersistence wraps a failed durable write; the transition did not
	// take effect and no notification was attempted.
	ErrPersistence = errors.New("order store write failed")
)
