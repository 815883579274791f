package ai

import (
	"context"
	"strings"
)

// RuleClassifier handles the named intents with keyword matching; anything
// it does not recognize is a free-form query. Order matters: "place order"
// must win over the bare "order" that also appears in add-to-item phrasing.
type RuleClassifier struct{}

var ruleTable = []struct {
	intent   Intent
	keywords []string
}{
	{IntentPlaceOrder, []string{"place order", "place my order", "checkout", "check out", "buy now"}},
	{IntentViewCart, []string{"cart", "my basket", "what have i added"}},
	{IntentShowCatalog, []string{"menu", "catalog", "what do you have", "what's available", "show me"}},
	{IntentAddToItem, []string{"add ", "i want ", "i'd like ", "get me ", "order "}},
	{IntentGreet, []string{"hi", "hello", "hey", "good morning", "good evening", "namaste"}},
}

func (RuleClassifier) Classify(_ context.Context, message string) (Intent, error) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return IntentFreeFormQuery, nil
	}
	for _, row := range ruleTable {
		for _, kw := range row.keywords {
			if row.intent == IntentGreet {
				// Greetings match only short openers, not "hi, is the pizza spicy?"
				if msg == kw || strings.HasPrefix(msg, kw+"!") {
					return row.intent, nil
				}
				continue
			}
			if strings.Contains(msg, kw) {
				return row.intent, nil
			}
		}
	}
	return IntentFreeFormQuery, nil
}
