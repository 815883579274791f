package payments

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// ProviderOrder is the processor-side order the storefront checks out
// against. Its ID is distinct from our own order ids.
type ProviderOrder struct {
	ID          string `json:"order_id"`
	AmountPaise int    `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key"`
}

// Client wraps the Razorpay SDK for order creation. Signature checks live
// in sign.go; they need only the key secret.
type Client struct {
	rz    *razorpay.Client
	keyID string
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{rz: razorpay.NewClient(keyID, keySecret), keyID: keyID}
}

// CreateOrder registers a capture-on-payment order with the processor.
func (c *Client) CreateOrder(amountPaise int) (ProviderOrder, error) {
	if amountPaise <= 0 {
		return ProviderOrder{}, errors.New("invalid amount")
	}
	body, err := c.rz.Order.Create(map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"payment_capture": 1,
	}, nil)
	if err != nil {
		return ProviderOrder{}, fmt.Errorf("create provider order: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return ProviderOrder{}, errors.New("provider returned no order id")
	}
	return ProviderOrder{
		ID:          id,
		AmountPaise: amountPaise,
		Currency:    "INR",
		KeyID:       c.keyID,
	}, nil
}
