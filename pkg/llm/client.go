package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-sonnet-4-5-20250929"
	// MaxTokens is the output token budget of every request.
	MaxTokens = 3096
)

// Client sends prompts to the Anthropic Messages API.
type Client struct {
	api   anthropic.Client
	model string
}

// NewClient creates a client for the given credential and model.
// Retries are disabled; extra options are applied after the defaults.
func NewClient(apiKey, model string, opts ...option.RequestOption) (client *Client) {
	if model == "" {
		model = DefaultModel
	}

	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}

	client = &Client{
		api:   anthropic.NewClient(append(base, opts...)...),
		model: model,
	}
	return client
}

// Model returns the model identifier requests are sent to.
func (c *Client) Model() (model string) {
	model = c.model
	return model
}

// Complete sends prompt as the sole user message and returns the reply text.
func (c *Client) Complete(ctx context.Context, prompt string) (text string, err error) {
	var msg *anthropic.Message
	msg, err = c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			err = &StatusError{
				StatusCode: apiErr.StatusCode,
				Message:    errorMessage(apiErr),
			}
			return text, err
		}
		err = errors.Wrap(err, "model request failed")
		return text, err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text = sb.String()
	if strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
		return text, err
	}

	return text, err
}

// errorMessage pulls error.message out of an API error body, if there is one.
func errorMessage(apiErr *anthropic.Error) (msg string) {
	var body anthropic.ErrorResponse
	if json.Unmarshal([]byte(apiErr.RawJSON()), &body) == nil {
		msg = body.Error.Message
	}
	return msg
}

// GenerateDocument asks the model for structured data and parses its reply.
func (c *Client) GenerateDocument(ctx context.Context, prompt string) (doc *yaml.Node, err error) {
	var text string
	text, err = c.Complete(ctx, prompt)
	if err != nil {
		return doc, err
	}

	doc, err = ParseDocument(StripCodeFence(text))
	return doc, err
}

// ParseDocument parses structured-data text. The document must be a mapping.
func ParseDocument(text string) (doc *yaml.Node, err error) {
	var node yaml.Node
	err = yaml.Unmarshal([]byte(text), &node)
	if err != nil {
		err = &ParseError{Err: err}
		return doc, err
	}

	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		err = ErrEmptyResponse
		return doc, err
	}

	if node.Content[0].Kind != yaml.MappingNode {
		err = ErrNotMapping
		return doc, err
	}

	doc = &node
	return doc, err
}

// StripCodeFence returns the body of the first Markdown code fence in text,
// whatever its language tag. Prose around the fence is dropped, and an
// unterminated fence runs to the end. Text without a fence is returned trimmed.
func StripCodeFence(text string) (cleaned string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	open := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			open = i
			break
		}
	}
	if open < 0 {
		cleaned = strings.TrimSpace(text)
		return cleaned
	}

	end := len(lines)
	for i := open + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "```" {
			end = i
			break
		}
	}

	cleaned = strings.Join(lines[open+1:end], "\n")
	cleaned = strings.TrimRight(cleaned, " \t\r\n")
	return cleaned
}
