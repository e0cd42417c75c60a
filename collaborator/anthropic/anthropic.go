// Package anthropic backs the analytical collaborator services
// (content_analyzer, summarizer) with the Anthropic Claude API.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/queryflow/collaborator"
	"github.com/hupe1980/queryflow/core"
)

// Options configures the Anthropic collaborator adapter (temperature, model
// id, max tokens, API key). Extend via functional options to preserve
// stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Invoker serves the analytical collaborator services through the Anthropic
// Messages API. Requests for any other service fail with ErrServiceNotFound
// so it can sit behind a routing invoker.
type Invoker struct {
	client *anthropic.Client
	opts   Options
}

var _ core.Invoker = (*Invoker)(nil)

// New creates a new Anthropic invoker using the official client.
func New(optFns ...func(o *Options)) *Invoker {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.2,
		MaxTokens:   1024,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Invoker{
		client: &client,
		opts:   opts,
	}
}

// NewFromClient creates a new Anthropic invoker from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Invoker {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.2,
		MaxTokens:   1024,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Invoker{
		client: client,
		opts:   opts,
	}
}

// Invoke implements core.Invoker.
func (i *Invoker) Invoke(ctx context.Context, service string, request map[string]any) (map[string]any, error) {
	system, resultKey, err := servicePrompt(service)
	if err != nil {
		return nil, err
	}

	prompt, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:       i.opts.Model,
		MaxTokens:   i.opts.MaxTokens,
		Temperature: anthropic.Float(i.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(string(prompt))),
		},
	}

	resp, err := i.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.AsText().Text
		}
	}

	return map[string]any{
		resultKey:  text,
		"provider": "anthropic",
		"model":    string(i.opts.Model),
	}, nil
}

// servicePrompt maps a service name to its system prompt and result key.
func servicePrompt(service string) (system, resultKey string, err error) {
	switch service {
	case core.ServiceContentAnalyzer:
		return "You analyze the content described by the user's JSON request. " +
			"Respond with a concise analysis of its topics, structure and notable attributes.", "analysis", nil
	case core.ServiceSummarizer:
		return "You summarize the content described by the user's JSON request. " +
			"Respond with a short plain-text summary.", "summary", nil
	default:
		return "", "", fmt.Errorf("%w: %q", collaborator.ErrServiceNotFound, service)
	}
}
