package config

import (
	"testing"
	"time"
)

var configKeys = []string{
	"DARK_HOST",
	"DARK_DEV_HOST",
	"DARK_USER",
	"DARK_PASSWORD",
	"DARK_CANVAS",
	"DARK_AUTH_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")

	result := getEnv("TEST_VAR", "default_value")
	if result != "test_value" {
		t.Errorf("getEnv() = %s, want %s", result, "test_value")
	}

	result = getEnv("NON_EXISTENT_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("getEnv() = %s, want %s", result, "default_value")
	}

	t.Setenv("EMPTY_VAR", "")

	result = getEnv("EMPTY_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("getEnv() = %s, want %s", result, "default_value")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	testVars := map[string]string{
		"DARK_HOST":         "https://staging.example.com",
		"DARK_DEV_HOST":     "http://localhost:9000",
		"DARK_USER":         "alice",
		"DARK_PASSWORD":     "secret",
		"DARK_CANVAS":       "demo",
		"DARK_AUTH_TIMEOUT": "5s",
	}

	for key, value := range testVars {
		t.Setenv(key, value)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Host != testVars["DARK_HOST"] {
		t.Errorf("config.Host = %s, want %s", config.Host, testVars["DARK_HOST"])
	}

	if config.DevHost != testVars["DARK_DEV_HOST"] {
		t.Errorf("config.DevHost = %s, want %s", config.DevHost, testVars["DARK_DEV_HOST"])
	}

	if config.Username != testVars["DARK_USER"] {
		t.Errorf("config.Username = %s, want %s", config.Username, testVars["DARK_USER"])
	}

	if config.Password != testVars["DARK_PASSWORD"] {
		t.Errorf("config.Password = %s, want %s", config.Password, testVars["DARK_PASSWORD"])
	}

	if config.Canvas != testVars["DARK_CANVAS"] {
		t.Errorf("config.Canvas = %s, want %s", config.Canvas, testVars["DARK_CANVAS"])
	}

	if config.AuthTimeout != 5*time.Second {
		t.Errorf("config.AuthTimeout = %s, want %s", config.AuthTimeout, 5*time.Second)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if config.Host != DefaultHost {
		t.Errorf("config.Host = %s, want %s", config.Host, DefaultHost)
	}

	if config.DevHost != DefaultDevHost {
		t.Errorf("config.DevHost = %s, want %s", config.DevHost, DefaultDevHost)
	}

	if config.Username != "" || config.Password != "" || config.Canvas != "" {
		t.Errorf("expected empty credentials, got %+v", config)
	}

	if config.AuthTimeout != DefaultAuthTimeout {
		t.Errorf("config.AuthTimeout = %s, want %s", config.AuthTimeout, DefaultAuthTimeout)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("DARK_AUTH_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid DARK_AUTH_TIMEOUT")
	}
}

func TestResolveHost(t *testing.T) {
	cfg := &Config{Host: DefaultHost, DevHost: DefaultDevHost}

	tests := []struct {
		name     string
		override string
		dev      bool
		expected string
	}{
		{"Production", "", false, DefaultHost},
		{"Dev", "", true, DefaultDevHost},
		{"Override wins", "https://other.example.com", true, "https://other.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ResolveHost(tt.override, tt.dev); got != tt.expected {
				t.Errorf("ResolveHost() = %s, want %s", got, tt.expected)
			}
		})
	}
}
