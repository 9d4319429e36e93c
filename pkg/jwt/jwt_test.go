package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "transcript-iq")
	userID := uuid.New()

	token, err := v.Issue(userID, "ana@example.com", "authenticated", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := v.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	got, _ := claims.UserID()
	if got != userID || claims.Email != "ana@example.com" || claims.Role != "authenticated" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "transcript-iq")
	userID := uuid.New()

	expired, _ := v.Issue(userID, "", "", -time.Minute)
	otherKey, _ := NewVerifier("other", "transcript-iq").Issue(userID, "", "", time.Hour)
	otherIssuer, _ := NewVerifier("secret", "someone-else").Issue(userID, "", "", time.Hour)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"garbage":      "not.a.token",
	} {
		if _, err := v.Verify(token); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestVerifier_NoSecret(t *testing.T) {
	v := NewVerifier("", "")
	if v.Enabled() {
		t.Fatalf("verifier without secret must be disabled")
	}
	if _, err := v.Verify("x"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}
