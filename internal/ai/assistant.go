package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = `You are Foodie, the assistant for the YummyBites restaurant.
Answer questions about the menu below briefly and helpfully. Recommend dishes
from the menu only; never invent dishes or prices.

MENU:
`

// CatalogSource supplies the menu text the model is grounded on.
type CatalogSource interface {
	CatalogText(ctx context.Context) (string, error)
}

// Assistant answers free-form queries with an LLM and routes everything
// else through the classifier. With no API key configured it still serves
// the named intents; only free-form answers degrade to a canned reply.
type Assistant struct {
	Classifier Classifier
	Catalog    CatalogSource
	APIKey     string
	Model      string
}

type Reply struct {
	Intent  Intent `json:"intent"`
	Message string `json:"message"`
}

func (a *Assistant) Handle(ctx context.Context, message string) (Reply, error) {
	intent, err := a.Classifier.Classify(ctx, message)
	if err != nil {
		return Reply{}, err
	}

	switch intent {
	case IntentGreet:
		return Reply{intent, "Hey there! I'm Foodie 🍽️ — ask me about the menu or tell me what you're craving."}, nil
	case IntentShowCatalog:
		return Reply{intent, "Here's our menu — use the catalog view to browse by category."}, nil
	case IntentAddToItem:
		return Reply{intent, "Sure — adding that to your cart."}, nil
	case IntentViewCart:
		return Reply{intent, "Opening your cart."}, nil
	case IntentPlaceOrder:
		return Reply{intent, "Let's get your order placed — heading to checkout."}, nil
	}

	answer, err := a.freeForm(ctx, message)
	if err != nil {
		slog.Warn("assistant completion failed", "error", err)
		return Reply{IntentFreeFormQuery, "I couldn't look that up right now — try browsing the menu instead."}, nil
	}
	return Reply{IntentFreeFormQuery, answer}, nil
}

func (a *Assistant) freeForm(ctx context.Context, message string) (string, error) {
	if a.APIKey == "" {
		return "", errors.New("no model API key configured")
	}

	menuText := ""
	if a.Catalog != nil {
		text, err := a.Catalog.CatalogText(ctx)
		if err != nil {
			return "", fmt.Errorf("load catalog: %w", err)
		}
		menuText = text
	}

	client := openai.NewClient(option.WithAPIKey(a.APIKey))
	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt + menuText),
			openai.UserMessage(message),
		},
		Model: a.Model,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
