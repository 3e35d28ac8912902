package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AZURE_OPENAI_ENDPOINT",
		"AZURE_OPENAI_API_KEY",
		"AZURE_OPENAI_DEPLOYMENT",
		"AZURE_OPENAI_API_VERSION",
		"VOICEBRIDGE_ADDR",
		"VOICEBRIDGE_STATIC_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q; want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.Azure.Deployment != DefaultDeployment {
		t.Errorf("Deployment = %q; want %q", cfg.Azure.Deployment, DefaultDeployment)
	}
	if cfg.Azure.APIVersion != DefaultAPIVersion {
		t.Errorf("APIVersion = %q; want %q", cfg.Azure.APIVersion, DefaultAPIVersion)
	}
	if cfg.HasCredentials() {
		t.Error("HasCredentials() = true with no endpoint or key")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "voicebridge.yaml")
	data := []byte(`
addr: ":9000"
azure:
  endpoint: https://file.openai.azure.com
  api_key: file-key
  deployment: file-deployment
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://env.openai.azure.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":9000" {
		t.Errorf("Addr = %q; want :9000 from file", cfg.Addr)
	}
	if cfg.Azure.Endpoint != "https://env.openai.azure.com" {
		t.Errorf("Endpoint = %q; want the env value to win", cfg.Azure.Endpoint)
	}
	if cfg.Azure.APIKey != "file-key" {
		t.Errorf("APIKey = %q; want file-key", cfg.Azure.APIKey)
	}
	if cfg.Azure.Deployment != "file-deployment" {
		t.Errorf("Deployment = %q; want file-deployment", cfg.Azure.Deployment)
	}
	if !cfg.HasCredentials() {
		t.Error("HasCredentials() = false with endpoint and key set")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load with a missing named file succeeded; want error")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load with invalid YAML succeeded; want error")
	}
}
