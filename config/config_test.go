package config

import (
	"os"
	"testing"
	"time"
)

const testYAML = `
env:
  env: test
  serviceName: focusflow
  log:
    pretty: true
    level: debug
http:
  port: 8080
secretKey:
  access: access-secret
  refresh: refresh-secret
  verification: verify-secret
auth:
  accessTokenTTL: 10m
  refreshTokenTTL: 48h
verification:
  tokenTTL: 90m
  resendCooldown: 45s
`

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	t.Chdir(t.TempDir())
	if err := os.WriteFile("config.yaml", []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
}

func TestNew_ParsesDurationsAndSecrets(t *testing.T) {
	writeConfigFile(t, testYAML)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Fatalf("http.port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.SecretKey.Verification != "verify-secret" {
		t.Fatalf("secretKey.verification = %q", cfg.SecretKey.Verification)
	}
	if cfg.Auth.AccessTokenTTL != 10*time.Minute {
		t.Fatalf("auth.accessTokenTTL = %v, want 10m", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.RefreshTokenTTL != 48*time.Hour {
		t.Fatalf("auth.refreshTokenTTL = %v, want 48h", cfg.Auth.RefreshTokenTTL)
	}
	if cfg.Verification.TokenTTL != 90*time.Minute {
		t.Fatalf("verification.tokenTTL = %v, want 90m", cfg.Verification.TokenTTL)
	}
	if cfg.Verification.ResendCooldown != 45*time.Second {
		t.Fatalf("verification.resendCooldown = %v, want 45s", cfg.Verification.ResendCooldown)
	}
}

func TestNew_FillsPolicyDefaults(t *testing.T) {
	writeConfigFile(t, "http:\n  port: 8080\n")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("default accessTokenTTL = %v, want 15m", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("default refreshTokenTTL = %v, want 168h", cfg.Auth.RefreshTokenTTL)
	}
	if cfg.Verification.TokenTTL != time.Hour {
		t.Fatalf("default tokenTTL = %v, want 1h", cfg.Verification.TokenTTL)
	}
	if cfg.Verification.ResendCooldown != 60*time.Second {
		t.Fatalf("default resendCooldown = %v, want 60s", cfg.Verification.ResendCooldown)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	writeConfigFile(t, testYAML)
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if cfg.HTTP.Port != 9090 {
		t.Fatalf("http.port = %d, want env override 9090", cfg.HTTP.Port)
	}
}
