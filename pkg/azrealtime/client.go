package azrealtime

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Defaults used when the corresponding option is not set.
const (
	// DefaultDeployment is the default realtime model deployment name.
	DefaultDeployment = "gpt-4o-realtime-preview"

	// DefaultAPIVersion is the default Azure OpenAI API version.
	DefaultAPIVersion = "2024-10-01-preview"
)

// ErrMissingCredentials is returned by NewClient when the endpoint or
// API key is empty. It is reported before any connection attempt.
var ErrMissingCredentials = errors.New("azrealtime: endpoint and API key are required")

// Client is the Azure OpenAI Realtime API client. A single Client can
// open any number of independent sessions via Connect.
type Client struct {
	config *clientConfig
}

// clientConfig holds the client configuration.
type clientConfig struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	wsURL      string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*clientConfig)

// NewClient creates a new Azure OpenAI Realtime client.
//
// The endpoint is the Azure resource endpoint, for example
// "https://my-resource.openai.azure.com". Both endpoint and apiKey are
// required; NewClient returns ErrMissingCredentials if either is empty.
func NewClient(endpoint, apiKey string, opts ...Option) (*Client, error) {
	if endpoint == "" || apiKey == "" {
		return nil, ErrMissingCredentials
	}

	cfg := &clientConfig{
		endpoint:   endpoint,
		apiKey:     apiKey,
		deployment: DefaultDeployment,
		apiVersion: DefaultAPIVersion,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{config: cfg}, nil
}

// WithDeployment sets the realtime model deployment name.
func WithDeployment(deployment string) Option {
	return func(c *clientConfig) {
		if deployment != "" {
			c.deployment = deployment
		}
	}
}

// WithAPIVersion sets the Azure OpenAI API version.
func WithAPIVersion(version string) Option {
	return func(c *clientConfig) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithHTTPClient sets a custom HTTP client. Its Timeout is used as the
// WebSocket handshake timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithWebSocketURL overrides the WebSocket URL entirely, bypassing URL
// construction from endpoint, API version and deployment. Intended for
// proxies and tests.
func WithWebSocketURL(url string) Option {
	return func(c *clientConfig) {
		c.wsURL = url
	}
}

// realtimeURL constructs the WebSocket URL from the configured endpoint,
// API version and deployment. The endpoint's scheme prefix and trailing
// slashes are stripped before concatenation.
func (c *Client) realtimeURL() string {
	if c.config.wsURL != "" {
		return c.config.wsURL
	}

	host := strings.TrimRight(c.config.endpoint, "/")
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")

	return fmt.Sprintf("wss://%s/openai/realtime?api-version=%s&deployment=%s",
		host, c.config.apiVersion, c.config.deployment)
}
