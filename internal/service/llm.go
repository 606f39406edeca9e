package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantry-chef/backend/internal/metrics"
)

const (
	maxProviderAttempts = 2
	defaultRetryDelay   = 500 * time.Millisecond
	maxErrorBodyBytes   = 512
)

// LLMConfig configures the chat-completions client
type LLMConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// LLMService calls an OpenAI-compatible chat-completions endpoint
type LLMService struct {
	apiKey     string
	apiURL     string
	model      string
	timeout    time.Duration
	retryDelay time.Duration
	client     *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg LLMConfig, logger *zap.Logger, m *metrics.Metrics) *LLMService {
	return &LLMService{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		retryDelay: defaultRetryDelay,
		client:     &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		metrics:    m,
	}
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	Temperature    float64           `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// providerError records whether a failed attempt is worth repeating
type providerError struct {
	err       error
	retryable bool
}

func (e *providerError) Error() string { return e.err.Error() }
func (e *providerError) Unwrap() error { return e.err }

// Generate sends prompt to the provider. Transport errors, 429 and 5xx are
// retried once; every failure is reported as ErrProviderUnavailable.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxProviderAttempts; attempt++ {
		content, err := s.call(ctx, prompt)
		if err == nil {
			s.metrics.ProviderAttempts.WithLabelValues("ok").Inc()
			return content, nil
		}
		lastErr = err

		var perr *providerError
		retryable := errors.As(err, &perr) && perr.retryable
		if !retryable || attempt == maxProviderAttempts {
			s.metrics.ProviderAttempts.WithLabelValues("failed").Inc()
			break
		}

		s.metrics.ProviderAttempts.WithLabelValues("retryable").Inc()
		s.logger.Warn("generation provider call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, ctx.Err())
		case <-time.After(s.retryDelay):
		}
	}

	return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, lastErr)
}

func (s *LLMService) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: chefSystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &providerError{err: fmt.Errorf("failed to send request: %w", err), retryable: true}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &providerError{err: fmt.Errorf("failed to read response: %w", err), retryable: true}
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		return "", &providerError{
			err:       fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body)),
			retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("no response from API")
	}

	s.logger.Debug("generation provider replied", zap.Int("content_bytes", len(result.Choices[0].Message.Content)))
	return result.Choices[0].Message.Content, nil
}
