package jwtauth

import (
	"context"
	"testing"
	"time"

	"eventhorizon/internal/ports/auth"
)

func TestProvider_IssueVerify_RoundTrip(t *testing.T) {
	p := New(Config{Secret: "test-secret", TTL: time.Hour})

	in := auth.Claims{UserID: "user-1", Email: "ada@example.com", Role: auth.RoleAdmin}
	token, err := p.Issue(context.Background(), in)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	out, err := p.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if out != in {
		t.Fatalf("claims mismatch: got %#v, expected %#v", out, in)
	}
}

func TestProvider_Verify_Expired(t *testing.T) {
	p := New(Config{Secret: "test-secret", TTL: time.Hour})

	issuedAt := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return issuedAt }

	token, err := p.Issue(context.Background(), auth.Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	p.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := p.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestProvider_Verify_WrongSecretOrIssuer(t *testing.T) {
	a := New(Config{Secret: "secret-a"})
	b := New(Config{Secret: "secret-b"})
	other := New(Config{Secret: "secret-a", Issuer: "someone-else"})

	token, err := a.Issue(context.Background(), auth.Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := b.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected verification with wrong secret to fail")
	}
	if _, err := other.Verify(context.Background(), token); err == nil {
		t.Fatalf("expected verification with wrong issuer to fail")
	}
}

func TestProvider_NotConfigured(t *testing.T) {
	p := New(Config{})

	if _, err := p.Issue(context.Background(), auth.Claims{UserID: "u"}); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := p.Verify(context.Background(), "whatever"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestProvider_RoleDefaultsToUser(t *testing.T) {
	p := New(Config{Secret: "test-secret"})

	token, err := p.Issue(context.Background(), auth.Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	out, err := p.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if out.Role != auth.RoleUser {
		t.Fatalf("expected default role user, got %s", out.Role)
	}
}
