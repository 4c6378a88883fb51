package utils

import (
	"strings"
	"testing"
)

func TestSessionTokenerRoundTrip(t *testing.T) {
	tokener, err := NewSessionTokener(strings.Repeat("k", 32))
	if err != nil {
		t.Fatalf("NewSessionTokener: %v", err)
	}

	token, err := tokener.Issue("session-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := tokener.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.SessionID != "session-123" {
		t.Errorf("SessionID = %q, want session-123", claims.SessionID)
	}
}

func TestSessionTokenerRejectsBadKeyLength(t *testing.T) {
	if _, err := NewSessionTokener("short"); err == nil {
		t.Error("short key accepted")
	}
}

func TestSessionTokenerRejectsForeignToken(t *testing.T) {
	issuer, _ := NewSessionTokener(strings.Repeat("a", 32))
	verifier, _ := NewSessionTokener(strings.Repeat("b", 32))

	token, err := issuer.Issue("session-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Error("token from a different key verified")
	}
}
