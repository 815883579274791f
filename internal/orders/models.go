package orders

import "time"

type Order struct {
	ID        string          `json:"order_id"`
	UserEmail string          `json:"user_email"`
	Items     []Item          `json:"items"`
	Total     int             `json:"total_cents"`
	Status    Status          `json:"status"`
	Delivery  DeliveryDetails `json:"delivery_details"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Item struct {
	DishID     string `json:"dish_id"`
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"`
}

type DeliveryDetails struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Instructions string `json:"instructions,omitempty"`
}

// Stats backs the admin dashboard summary.
type Stats struct {
	TotalOrders   int `json:"total_orders"`
	PendingOrders int `json:"pending_orders"`
	RevenueCents  int `json:"revenue_cents"`
}
