package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"hireflow/internal/ai"
	"hireflow/internal/config"
)

const defaultModel = "gemini-2.5-flash"

// Client wraps the Google GenAI client with per-call timeouts, bounded retry
// on transient failures, and strict JSON-schema output parsing. It implements
// every capability interface in package ai.
type Client struct {
	client *genai.Client
	model  string

	callTimeout time.Duration
	maxRetries  int
	backoff     time.Duration

	logger *zap.Logger
}

func New(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.GeminiAPIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	return &Client{
		client:      client,
		model:       model,
		callTimeout: callTimeout,
		maxRetries:  retries,
		backoff:     backoff,
		logger:      logger,
	}, nil
}

// generateJSON runs one schema-constrained generation, retrying transient
// failures up to maxRetries with linear backoff. Output that cannot be
// decoded into out is a permanent error.
func (c *Client) generateJSON(ctx context.Context, op, prompt string, schema *genai.Schema, out any) error {
	if c == nil || c.client == nil {
		return ai.Permanent(op, errors.New("gemini client is not initialized"))
	}

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ai.Transient(op, ctx.Err())
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
			c.logger.Debug("retrying gemini call",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
		}

		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		resp, err := c.client.Models.GenerateContent(callCtx, c.model, genai.Text(prompt), genCfg)
		cancel()

		if err != nil {
			classified := classify(op, err)
			if ai.IsTransient(classified) {
				lastErr = classified
				continue
			}
			return classified
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			lastErr = ai.Transient(op, errors.New("empty model response"))
			continue
		}

		if err := json.Unmarshal([]byte(extractJSON(text)), out); err != nil {
			return ai.Permanent(op, fmt.Errorf("decode model output: %w", err))
		}
		return nil
	}

	return lastErr
}

// classify maps call errors onto the transient/permanent taxonomy. Rate
// limits, upstream 5xx and deadline hits retry; everything the API rejects
// outright does not.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ai.Transient(op, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code >= 500 {
			return ai.Transient(op, err)
		}
		return ai.Permanent(op, err)
	}

	// Network-level failures without an API status.
	return ai.Transient(op, err)
}

// extractJSON strips a markdown code fence if the model wrapped its output in
// one.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSpace(raw)
	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
