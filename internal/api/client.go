package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// MessageClientInterface is the surface of the message-storage service used
// by the editor and the CLI commands.
type MessageClientInterface interface {
	GetMessage(ctx context.Context) (string, error)
	PutMessage(ctx context.Context, text string) (string, error)
	PostMessage(ctx context.Context, text string) (string, error)
	SetMode(ctx context.Context, mode string) (string, error)
	APIBase() string
}

// MessageClient talks to the message resource over HTTP
type MessageClient struct {
	httpClient     tls_client.HttpClient
	apiBase        string
	timeoutSeconds int
	logger         *slog.Logger
}

// Ensure MessageClient implements MessageClientInterface
var _ MessageClientInterface = (*MessageClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*MessageClient)

// WithTimeoutSeconds bounds every request. 0 disables the timeout.
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *MessageClient) {
		c.timeoutSeconds = seconds
	}
}

// WithHTTPClient replaces the underlying transport
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *MessageClient) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the structured logger used for request tracing
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *MessageClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a MessageClient for the given API base
// (for example "http://localhost:5000/api").
func NewClient(apiBase string, opts ...ClientOption) (*MessageClient, error) {
	if apiBase == "" {
		return nil, fmt.Errorf("api base must not be empty")
	}

	client := &MessageClient{
		apiBase: apiBase,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(client.timeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// APIBase returns the resolved API base
func (c *MessageClient) APIBase() string {
	return c.apiBase
}

// GetHTTPClient returns the underlying HTTP client
func (c *MessageClient) GetHTTPClient() tls_client.HttpClient {
	return c.httpClient
}
