package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	gpt "github.com/m-ariany/gpt-chat-client"

	"fitmyphone-backend-go/internal/models"
)

var (
	sharedClient *gpt.Client
	once         sync.Once
)

// Config carries the connection settings for the hosted LLM API.
type Config struct {
	APIURL      string
	APIKey      string
	Model       string
	Temperature float32
}

// SuggestionClient calls the hosted LLM for fuzzy-match suggestions.
type SuggestionClient struct {
	client *gpt.Client
}

// NewSuggestionClient creates the suggestion client. The underlying chat
// client is a process-wide singleton; each request works on a clone so
// conversations never bleed into each other.
func NewSuggestionClient(cnf Config) (*SuggestionClient, error) {
	var err error
	once.Do(func() {
		temperature := cnf.Temperature
		sharedClient, err = gpt.NewClient(gpt.ClientConfig{
			ApiUrl:      cnf.APIURL,
			ApiKey:      cnf.APIKey,
			Model:       cnf.Model,
			Temperature: &temperature,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if sharedClient == nil {
		return nil, fmt.Errorf("LLM client was not initialized")
	}
	return &SuggestionClient{client: sharedClient}, nil
}

// Suggest asks the model for likely matches and alternative terms for a query
// that matched nothing locally. The response is validated for schema shape
// only.
func (c *SuggestionClient) Suggest(ctx context.Context, term, category string) (*models.Suggestion, error) {
	chat := c.client.Clone()
	chat.Instruct(fmt.Sprintf(suggestionInstruction, term, category))

	raw, err := chat.Prompt(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("LLM suggestion request failed: %w", err)
	}

	suggestion := &models.Suggestion{}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), suggestion); err != nil {
		return nil, fmt.Errorf("LLM suggestion response is not valid JSON: %w", err)
	}
	return suggestion, nil
}

// stripCodeFence removes a surrounding markdown code fence, which chat models
// often wrap JSON answers in despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
