package azrealtime

import (
	"errors"
	"testing"
)

func TestNewClient_MissingCredentials(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		apiKey   string
	}{
		{"no endpoint", "", "key"},
		{"no key", "https://res.openai.azure.com", ""},
		{"neither", "", ""},
	}

	for _, tc := range tests {
		_, err := NewClient(tc.endpoint, tc.apiKey)
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("%s: NewClient() error = %v; want ErrMissingCredentials", tc.name, err)
		}
	}
}

func TestRealtimeURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		opts     []Option
		want     string
	}{
		{
			name:     "https prefix stripped",
			endpoint: "https://res.openai.azure.com",
			want:     "wss://res.openai.azure.com/openai/realtime?api-version=2024-10-01-preview&deployment=gpt-4o-realtime-preview",
		},
		{
			name:     "http prefix stripped",
			endpoint: "http://res.openai.azure.com",
			want:     "wss://res.openai.azure.com/openai/realtime?api-version=2024-10-01-preview&deployment=gpt-4o-realtime-preview",
		},
		{
			name:     "trailing slash trimmed",
			endpoint: "https://res.openai.azure.com/",
			want:     "wss://res.openai.azure.com/openai/realtime?api-version=2024-10-01-preview&deployment=gpt-4o-realtime-preview",
		},
		{
			name:     "bare host",
			endpoint: "res.openai.azure.com",
			want:     "wss://res.openai.azure.com/openai/realtime?api-version=2024-10-01-preview&deployment=gpt-4o-realtime-preview",
		},
		{
			name:     "custom deployment and version",
			endpoint: "https://res.openai.azure.com",
			opts:     []Option{WithDeployment("my-deploy"), WithAPIVersion("2025-04-01-preview")},
			want:     "wss://res.openai.azure.com/openai/realtime?api-version=2025-04-01-preview&deployment=my-deploy",
		},
		{
			name:     "explicit URL override",
			endpoint: "https://res.openai.azure.com",
			opts:     []Option{WithWebSocketURL("ws://127.0.0.1:9999/realtime")},
			want:     "ws://127.0.0.1:9999/realtime",
		},
	}

	for _, tc := range tests {
		client, err := NewClient(tc.endpoint, "test-key", tc.opts...)
		if err != nil {
			t.Fatalf("%s: NewClient() error: %v", tc.name, err)
		}
		if got := client.realtimeURL(); got != tc.want {
			t.Errorf("%s: realtimeURL() = %q; want %q", tc.name, got, tc.want)
		}
	}
}

func TestWithDeployment_EmptyIgnored(t *testing.T) {
	client, err := NewClient("https://res.openai.azure.com", "key", WithDeployment(""))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if client.config.deployment != DefaultDeployment {
		t.Errorf("deployment = %q; want default %q", client.config.deployment, DefaultDeployment)
	}
}
