package ai

import "context"

// Intent is a named action the chat widget knows how to execute.
type Intent string

const (
	IntentGreet         Intent = "greet"
	IntentShowCatalog   Intent = "show-catalog"
	IntentAddToItem     Intent = "add-to-item"
	IntentViewCart      Intent = "view-cart"
	IntentPlaceOrder    Intent = "place-order"
	IntentFreeFormQuery Intent = "free-form-query"
)

// Classifier maps free-text input to one of the named actions.
// free-form-query is the catch-all for anything the widget should answer
// conversationally rather than act on.
type Classifier interface {
	Classify(ctx context.Context, message string) (Intent, error)
}
