// Package llm requests query completions from a hosted chat completion model
// (Azure OpenAI deployments or any OpenAI compatible endpoint).
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ClientError is an error from the completion client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches any ClientError of the same type, so wrapped failures still
// satisfy errors.Is(err, ErrUnavailable).
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	return ok && t.Type == e.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnavailable
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// Sentinel errors for errors.Is checks.
var (
	ErrUnavailable = &ClientError{Type: ErrTypeUnavailable, Message: "completion endpoint unavailable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "completion request timed out"}
)

const (
	defaultAPIVersion = "2024-05-01-preview"
	defaultDeployment = "gpt-4o-mini"
	defaultTimeout    = 10 * time.Second
	defaultRPS        = 5
)

// ClientConfig holds configuration options for the completion client.
type ClientConfig struct {
	// Endpoint is the resource base URL, e.g. https://myresource.openai.azure.com.
	// Any path after the host is ignored.
	Endpoint string

	// Deployment is the model deployment name (default: gpt-4o-mini).
	Deployment string

	// APIVersion is sent as the api-version query parameter (default: 2024-05-01-preview).
	APIVersion string

	// APIKey is sent in the api-key header.
	APIKey string

	// Timeout for one request (default: 10s).
	Timeout time.Duration

	// RequestsPerSecond throttles calls to the upstream (default: 5).
	RequestsPerSecond float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Deployment:        defaultDeployment,
		APIVersion:        defaultAPIVersion,
		Timeout:           defaultTimeout,
		RequestsPerSecond: defaultRPS,
	}
}

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client calls the chat completions API. It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client, filling zero values of config with defaults.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Deployment == "" {
		config.Deployment = defaultDeployment
	}
	if config.APIVersion == "" {
		config.APIVersion = defaultAPIVersion
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = defaultRPS
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), int(config.RequestsPerSecond)+1),
	}
}

// Configured reports whether an endpoint was set.
func (c *Client) Configured() bool {
	return c.config.Endpoint != ""
}

func (c *Client) url() string {
	base := c.config.Endpoint
	if i := strings.Index(base, "://"); i >= 0 {
		if j := strings.Index(base[i+3:], "/"); j >= 0 {
			base = base[:i+3+j]
		}
	}
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		base, c.config.Deployment, c.config.APIVersion)
}

// Complete sends messages and returns the content of the first choice.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if !c.Configured() {
		return "", ErrUnavailable
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &ClientError{Type: ErrTypeTimeout, Message: "waiting for upstream rate limit", Cause: err}
	}

	body, err := json.Marshal(chatRequest{Messages: messages})
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to encode request", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnavailable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.config.APIKey)
	req.Header.Set("x-ms-client-request-id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", ErrTimeout
		}
		return "", &ClientError{Type: ErrTypeUnavailable, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ClientError{
			Type:    ErrTypeStatus,
			Message: fmt.Sprintf("unexpected status %s: %s", resp.Status, truncate(string(data), 200)),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	if parsed.Error != nil {
		return "", &ClientError{Type: ErrTypeStatus, Message: parsed.Error.Code + ": " + parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "response has no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
