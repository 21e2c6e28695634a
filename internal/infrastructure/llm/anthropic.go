package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"LessonAnalyzer/internal/config"
	"LessonAnalyzer/internal/domain"
	"LessonAnalyzer/internal/ports"
	"LessonAnalyzer/internal/prompt"
)

const maxResponseBytes = 4 << 20

var errTransientStatus = errors.New("transient upstream status")

// AnthropicClient implements ports.ModelClient against the Anthropic messages API.
type AnthropicClient struct {
	endpoint   string
	model      string
	apiKey     string
	version    string
	maxTokens  int
	retry      config.RetryConfig
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.ModelClient = (*AnthropicClient)(nil)

// NewAnthropicClient builds a client from configuration. An empty API key is
// accepted here and reported by Complete.
func NewAnthropicClient(cfg config.AnthropicConfig, logger *slog.Logger) *AnthropicClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &AnthropicClient{
		endpoint:  strings.TrimRight(cfg.BaseURL, "/") + "/messages",
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		version:   cfg.Version,
		maxTokens: maxTokens,
		retry:     cfg.Retry,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type errorResponse struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete posts the rendered prompt as a single user message.
func (c *AnthropicClient) Complete(ctx context.Context, p prompt.Prompt) (domain.Outcome, error) {
	if c == nil {
		return domain.Outcome{}, fmt.Errorf("anthropic client is nil")
	}
	if c.apiKey == "" {
		return domain.Outcome{}, fmt.Errorf("anthropic client: %w", domain.ErrConfiguration)
	}

	body, err := json.Marshal(messageRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []message{{Role: "user", Content: p.Text()}},
	})
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("marshal anthropic payload: %w", err)
	}

	if c.retry.MaxAttempts <= 1 {
		return c.send(ctx, body)
	}
	return c.sendWithRetry(ctx, body)
}

func (c *AnthropicClient) sendWithRetry(ctx context.Context, body []byte) (domain.Outcome, error) {
	policy := backoff.NewExponentialBackOff()
	if c.retry.InitialInterval > 0 {
		policy.InitialInterval = c.retry.InitialInterval
	}
	if c.retry.MaxInterval > 0 {
		policy.MaxInterval = c.retry.MaxInterval
	}

	var last domain.Outcome
	operation := func() (domain.Outcome, error) {
		out, err := c.send(ctx, body)
		if err != nil {
			if ctx.Err() != nil {
				return domain.Outcome{}, backoff.Permanent(err)
			}
			return domain.Outcome{}, err
		}
		if out.Failure != nil && retryableStatus(out.Failure.Status) {
			last = out
			return out, errTransientStatus
		}
		return out, nil
	}

	out, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(c.retry.MaxAttempts)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.debug("retrying anthropic call", "error", err, "wait", wait)
		}),
	)
	if err != nil {
		if errors.Is(err, errTransientStatus) && last.Failure != nil {
			return last, nil
		}
		return domain.Outcome{}, err
	}
	return out, nil
}

func (c *AnthropicClient) send(ctx context.Context, body []byte) (domain.Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", c.version)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("read response: %w", err)
	}
	c.debug("anthropic responded", "status", resp.StatusCode, "bytes", len(raw), "duration", time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.Failed(resp.StatusCode, parseErrorBody(raw)), nil
	}

	var decoded messageResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.Outcome{}, fmt.Errorf("decode response: %w", err)
	}

	for _, block := range decoded.Content {
		if block.Type == "text" {
			return domain.Succeeded(block.Text), nil
		}
	}
	return domain.Succeeded(""), nil
}

func parseErrorBody(raw []byte) *domain.ErrorBody {
	var decoded errorResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	if decoded.Error == nil {
		return &domain.ErrorBody{}
	}
	return &domain.ErrorBody{Type: decoded.Error.Type, Message: decoded.Error.Message}
}

// retryableStatus covers server-side faults and the overloaded status (529).
func retryableStatus(status int) bool {
	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable,
		http.StatusGatewayTimeout, 529:
		return true
	default:
		return false
	}
}

func (c *AnthropicClient) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
