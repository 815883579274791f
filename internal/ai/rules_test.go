package ai

import (
	"context"
	"testing"
)

func TestRuleClassifier(t *testing.T) {
	cases := []struct {
		message string
		want    Intent
	}{
		{"hi", IntentGreet},
		{"Hello", IntentGreet},
		{"hey!", IntentGreet},
		{"namaste", IntentGreet},
		{"show me the menu", IntentShowCatalog},
		{"What do you have today?", IntentShowCatalog},
		{"add paneer tikka", IntentAddToItem},
		{"I want 2 margherita pizzas", IntentAddToItem},
		{"order a biryani for me", IntentAddToItem},
		{"what's in my cart?", IntentViewCart},
		{"place order", IntentPlaceOrder},
		{"please place my order now", IntentPlaceOrder},
		{"checkout", IntentPlaceOrder},
		{"hi, is the pizza spicy?", IntentFreeFormQuery},
		{"do you deliver to Andheri?", IntentFreeFormQuery},
		{"", IntentFreeFormQuery},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			got, err := RuleClassifier{}.Classify(context.Background(), tc.message)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got != tc.want {
				t.Errorf("Classify(%q) = %q, want %q", tc.message, got, tc.want)
			}
		})
	}
}
