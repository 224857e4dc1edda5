package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/martin-vega/tienda-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "tienda-backend",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintAccessToken(cfg, time.Now(), "session-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "session-1" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}
}

func TestMintRequiresConfig(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Secret = ""
	if _, err := MintAccessToken(cfg, time.Now(), "s"); err == nil {
		t.Fatal("missing secret must fail")
	}

	cfg = testJWTConfig()
	if _, err := MintAccessToken(cfg, time.Now(), "  "); err == nil {
		t.Fatal("blank subject must fail")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpirationMinutes = 1

	signed, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), "session-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expired token must fail")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), "session-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := testJWTConfig()
	other.Secret = "another-secret"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("wrong secret must fail")
	}
	if _, err := ParseAccessToken(other, strings.TrimSuffix(signed, "a")+"b"); err == nil {
		t.Fatal("tampered token must fail")
	}
}
