// Package openai backs the analytical collaborator services
// (content_analyzer, summarizer) with the OpenAI Chat Completions API.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/queryflow/collaborator"
	"github.com/hupe1980/queryflow/core"
)

// Options configure the OpenAI collaborator adapter. Fields mirror a subset
// of Chat Completion parameters intentionally kept minimal; extend via
// functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Invoker serves the analytical collaborator services through the OpenAI
// Chat Completions API. Requests for any other service fail with
// ErrServiceNotFound so it can sit behind a routing invoker.
type Invoker struct {
	client *openai.Client
	opts   Options
}

var _ core.Invoker = (*Invoker)(nil)

// New creates a new OpenAI invoker using the official client.
func New(optFns ...func(o *Options)) *Invoker {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI invoker from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Invoker {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.2,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Invoker{client: client, opts: opts}
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

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(string(prompt)),
		},
		Model:               i.opts.Model,
		Temperature:         openai.Float(i.opts.Temperature),
		MaxCompletionTokens: openai.Int(i.opts.MaxCompletionTokens),
	}

	resp, err := i.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	return map[string]any{
		resultKey:  resp.Choices[0].Message.Content,
		"provider": "openai",
		"model":    i.opts.Model,
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
