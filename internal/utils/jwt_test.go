package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 42, "user@example.com", "restaurant", 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if until := time.Until(tok.Exp); until <= 0 || until > time.Hour {
		t.Fatalf("expiry %v not within the next hour", tok.Exp)
	}

	claims, err := ParseAccessToken("test-secret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, ok := claims["sub"].(float64); !ok || uint64(got) != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if claims["email"] != "user@example.com" {
		t.Fatalf("email = %v", claims["email"])
	}
	if claims["role"] != "restaurant" {
		t.Fatalf("role = %v", claims["role"])
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret-a", 1, "a@b.c", "volunteer", 1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseAccessToken("secret-b", tok.Token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken("test-secret", 1, "a@b.c", "volunteer", -1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseAccessToken("test-secret", tok.Token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestParseAccessTokenGarbage(t *testing.T) {
	if _, err := ParseAccessToken("test-secret", "not.a.jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
