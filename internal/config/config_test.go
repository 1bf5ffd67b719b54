package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/web-debit/navigate-relay/app/internal/relay"
)

// setRequiredEnv sets the minimum environment for NewServerConfig to succeed
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SHOP_PWD", "secretX")
	t.Setenv("FS_TOKEN", "tokY")
	t.Setenv("ENVIRONMENT", "test")
}

func TestNewServerConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewServerConfig()
	if err != nil {
		t.Fatalf("NewServerConfig failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("PORT: got %d, want 8080", cfg.Port)
	}
	if cfg.Mode() != relay.ModeHardened {
		t.Errorf("RELAY_MODE: got %s, want %s", cfg.Mode(), relay.ModeHardened)
	}
	if cfg.EnableAuth {
		t.Error("ENABLE_AUTH should default to false")
	}

	creds := cfg.Credentials()
	if creds.ShopPassword() != "secretX" || creds.SessionToken() != "tokY" {
		t.Error("credentials not loaded from the environment")
	}
	if gw := cfg.Gateway(); !strings.HasPrefix(gw.URL, "https://") {
		t.Errorf("default gateway URL should be https, got %s", gw.URL)
	}
}

func TestNewServerConfigMissingSecrets(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing SHOP_PWD", map[string]string{"FS_TOKEN": "tokY"}},
		{"missing FS_TOKEN", map[string]string{"SHOP_PWD": "secretX"}},
		{"blank SHOP_PWD", map[string]string{"SHOP_PWD": "  ", "FS_TOKEN": "tokY"}},
		{"auth without admin password", map[string]string{"SHOP_PWD": "secretX", "FS_TOKEN": "tokY", "ENABLE_AUTH": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// t.Setenv restores the previous value; clear both secrets first
			t.Setenv("SHOP_PWD", "")
			t.Setenv("FS_TOKEN", "")
			unsetEnv(t, "SHOP_PWD", "FS_TOKEN")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewServerConfig()
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			if !errors.Is(err, relay.ErrConfiguration) {
				t.Errorf("expected relay.ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestNewServerConfigEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.env")
	content := "SHOP_PWD=fromfile\nFS_TOKEN=tokenfile\nRELAY_MODE=permissive\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// registered with t.Setenv so values loaded from the file are restored afterwards
	t.Setenv("SHOP_PWD", "")
	t.Setenv("FS_TOKEN", "tokY")
	t.Setenv("RELAY_MODE", "")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("ENV_FILE", path)
	unsetEnv(t, "SHOP_PWD", "RELAY_MODE")

	cfg, err := NewServerConfig()
	if err != nil {
		t.Fatalf("NewServerConfig failed: %v", err)
	}
	if cfg.ShopPassword != "fromfile" {
		t.Errorf("SHOP_PWD: got %q, want value from ENV_FILE", cfg.ShopPassword)
	}
	if cfg.FSToken != "tokY" {
		t.Errorf("FS_TOKEN: process environment should win over ENV_FILE, got %q", cfg.FSToken)
	}
	if cfg.Mode() != relay.ModePermissive {
		t.Errorf("RELAY_MODE: got %s, want permissive", cfg.Mode())
	}
}

func TestNewServerConfigMissingEnvFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	if _, err := NewServerConfig(); !errors.Is(err, relay.ErrConfiguration) {
		t.Errorf("expected relay.ErrConfiguration, got %v", err)
	}
}

func TestNewServerConfigEnvironment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		nodeEnv     string
		want        string
		wantErr     bool
	}{
		{"explicit", "staging", "", "staging", false},
		{"node env production", "", "production", "prod", false},
		{"node env development", "", "development", "dev", false},
		{"default", "", "", "dev", false},
		{"explicit wins", "test", "production", "test", false},
		{"invalid", "qa", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("ENVIRONMENT", tt.environment)
			t.Setenv("NODE_ENV", tt.nodeEnv)

			cfg, err := NewServerConfig()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Environment != tt.want {
				t.Errorf("got %s, want %s", cfg.Environment, tt.want)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() ServerEnvironment {
		return ServerEnvironment{
			Environment:    "dev",
			Port:           8080,
			RelayMode:      "hardened",
			ShopPassword:   "secretX",
			FSToken:        "tokY",
			GatewayURL:     "https://gateway.example.jp/navigate",
			MaxRequestSize: 1024,
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		}
	}

	tests := []struct {
		name    string
		modify  func(*ServerEnvironment)
		wantErr bool
	}{
		{"valid", func(*ServerEnvironment) {}, false},
		{"port too low", func(c *ServerEnvironment) { c.Port = 0 }, true},
		{"port too high", func(c *ServerEnvironment) { c.Port = 70000 }, true},
		{"bad mode", func(c *ServerEnvironment) { c.RelayMode = "client" }, true},
		{"permissive mode", func(c *ServerEnvironment) { c.RelayMode = "permissive" }, false},
		{"relative gateway url", func(c *ServerEnvironment) { c.GatewayURL = "/navigate" }, true},
		{"http gateway in dev", func(c *ServerEnvironment) { c.GatewayURL = "http://localhost:9000/navigate" }, false},
		{"http gateway in prod", func(c *ServerEnvironment) {
			c.Environment = "prod"
			c.GatewayURL = "http://gateway.example.jp/navigate"
		}, true},
		{"zero request size", func(c *ServerEnvironment) { c.MaxRequestSize = 0 }, true},
		{"rate limit without burst", func(c *ServerEnvironment) { c.RateLimitBurst = 0 }, true},
		{"rate limit disabled", func(c *ServerEnvironment) { c.RateLimitRPS = 0; c.RateLimitBurst = 0 }, false},
		{"auth with password", func(c *ServerEnvironment) { c.EnableAuth = true; c.AdminPassword = "pw" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := validateConfig(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
