// internal/genai/client.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/skanenje/prompt-enhancer/internal/common/config"
	commonerrors "github.com/skanenje/prompt-enhancer/internal/common/errors"
	"github.com/skanenje/prompt-enhancer/internal/common/logger"
)

var (
	ErrUnavailable     = errors.New("MODEL_UNAVAILABLE")
	ErrTimeout         = errors.New("MODEL_TIMEOUT")
	ErrUnauthenticated = errors.New("MODEL_UNAUTHENTICATED")
)

// Code maps a client error to its taxonomy code. Anything that is not a
// timeout or an auth failure counts as the model being unavailable.
func Code(err error) commonerrors.ErrorCode {
	switch {
	case errors.Is(err, ErrTimeout):
		return commonerrors.ErrCodeModelTimeout
	case errors.Is(err, ErrUnauthenticated):
		return commonerrors.ErrCodeModelUnauthenticated
	default:
		return commonerrors.ErrCodeModelUnavailable
	}
}

// Client is the external language model collaborator. The pipeline must run
// fully (degraded, never erroring) when no client is configured.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// HTTPClient talks to a text-generation endpoint at
// {baseURL}/api/generate. Timeouts come from the request context only; the
// retry loop backs off exponentially between attempts.
type HTTPClient struct {
	config *config.ModelConfig
	client *http.Client
	logger logger.Logger
}

// New returns nil when no endpoint is configured; callers treat a nil
// client as "model absent" and fall through to local heuristics.
func New(cfg *config.ModelConfig, log logger.Logger) *HTTPClient {
	if cfg == nil || !cfg.Enabled() {
		return nil
	}
	return &HTTPClient{
		config: cfg,
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{"component": "genai-client"}),
	}
}

func (c *HTTPClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.TimeoutDuration())
	defer cancel()

	requestBody := map[string]interface{}{
		"prompt":      prompt,
		"max_tokens":  c.config.MaxTokens,
		"temperature": c.config.Temperature,
	}
	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", c.config.BaseURL+"/api/generate", bytes.NewBuffer(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
		}

		resp, lastErr = c.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return "", ErrTimeout
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			// Auth failures will not improve with retries.
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return "", ErrUnauthenticated
			}
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: no successful response after retries", ErrUnavailable)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrUnavailable, err)
	}

	text := strings.TrimSpace(apiResponse.Text)
	c.logger.Debug("model call completed", map[string]interface{}{
		"promptLength":   len(prompt),
		"responseLength": len(text),
	})
	return text, nil
}
