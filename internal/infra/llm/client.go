// Package llm adapts the Anthropic SDK to the domain.LlmClient capability
// the core consumes (chat completion + embedding). Retry/backoff grounded
// on untoldecay-BeadsLog's HaikuClient.callWithRetry.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/deepwarren/deepwarren/internal/domain"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	// Timeouts are bounded by a configurable per-call timeout (§5); a timeout
	// is treated as a transport failure and invokes the caller's fallback.
	DefaultCallTimeout = 30 * time.Second
)

// Client wraps the Anthropic SDK behind domain.LlmClient.
type Client struct {
	sdk            anthropic.Client
	maxRetries     int
	initialBackoff time.Duration
	callTimeout    time.Duration
}

// New builds a Client. ANTHROPIC_API_KEY in the environment takes
// precedence over an explicit apiKey, matching the teacher's override order.
// With no key at all New returns ErrNoAPIKey. The daemon treats that as a
// valid starter state and runs with no LlmClient: world generation still
// proceeds on its deterministic non-LLM fallbacks. Generation is not
// refused, and there is no pre-baked sample world.
func New(apiKey string) (*Client, error) {
	if envKey := os.Getenv("ANTHROPIC_API_KEY"); envKey != "" {
		apiKey = envKey
	}
	if apiKey == "" {
		return nil, domain.ErrNoAPIKey
	}
	return &Client{
		sdk:            anthropic.NewClient(option.WithAPIKey(apiKey)),
		maxRetries:     defaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
		callTimeout:    DefaultCallTimeout,
	}, nil
}

func (c *Client) ChatCompletion(ctx context.Context, modelID string, systemPrompt, userContext string, maxTokens int, temperature float64) (domain.ChatCompletion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: int64(maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userContext)),
		},
		Temperature: anthropic.Float(temperature),
	}

	text, err := c.callWithRetry(ctx, params)
	if err != nil {
		return domain.ChatCompletion{}, err
	}
	return domain.ChatCompletion{
		Choices: []domain.ChatChoice{{Message: domain.ChatMessage{Role: "assistant", Content: text}}},
	}, nil
}

func (c *Client) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.initialBackoff * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", domain.ErrTimeout, ctx.Err())
			}
		}

		message, err := c.sdk.Messages.New(ctx, params)
		if err == nil {
			if len(message.Content) == 0 {
				return "", fmt.Errorf("%w: no content blocks", domain.ErrParseFailed)
			}
			block := message.Content[0]
			if block.Type != "text" {
				return "", fmt.Errorf("%w: unexpected block type %q", domain.ErrParseFailed, block.Type)
			}
			return block.Text, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrTimeout, ctx.Err())
		}
		if !isRetryable(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrTransportFailed, err)
		}
	}
	return "", fmt.Errorf("%w: exhausted %d retries: %v", domain.ErrTransportFailed, c.maxRetries+1, lastErr)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

// CreateEmbedding satisfies domain.LlmClient; no component in this module
// calls it. The Anthropic API does not expose an embeddings endpoint, so
// this client always reports TransportFailed.
func (c *Client) CreateEmbedding(ctx context.Context, text string, model string) ([]float64, error) {
	return nil, fmt.Errorf("%w: embeddings not supported by this backend", domain.ErrTransportFailed)
}

func (c *Client) Close() error { return nil }
