package orders

const (
	TopicOrderPlaced     = "order.placed"
	TopicStatusChanged   = "order.status.changed"
	TopicPaymentCaptured = "order.payment.captured"
	TopicPaymentFailed   = "order.payment.failed"
)

// Partition key = order_id, so all events for one order keep their order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
