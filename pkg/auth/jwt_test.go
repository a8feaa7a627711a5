package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.Issue("ana")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !svc.Verify(token, "ana") {
		t.Error("freshly issued credential does not verify")
	}
	if svc.Verify(token, "bruno") {
		t.Error("credential verifies for the wrong subject")
	}
}

func TestParseExtractsClaims(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	issued := time.Now()

	token, err := svc.Issue("ana")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "ana" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "ana")
	}
	if claims.IssuedAt == nil || claims.IssuedAt.Time.Before(issued.Add(-time.Minute)) {
		t.Errorf("IssuedAt = %v, want around %v", claims.IssuedAt, issued)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("missing expiration claim")
	}
	wantExp := issued.Add(time.Hour)
	if got := claims.ExpiresAt.Time; got.Before(wantExp.Add(-time.Minute)) || got.After(wantExp.Add(time.Minute)) {
		t.Errorf("ExpiresAt = %v, want around %v", got, wantExp)
	}
}

func TestVerifyExpiredCredential(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.Issue("ana")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Jump past the expiration instant.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if svc.Verify(token, "ana") {
		t.Error("expired credential still verifies")
	}
	if _, err := svc.Parse(token); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("Parse(expired) = %v, want ErrInvalidCredential", err)
	}
}

func TestParseFailsClosed(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.Issue("ana")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"truncated", token[:len(token)-10]},
		{"tampered payload", tamper(token)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Parse(tt.token); !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("Parse(%q) = %v, want ErrInvalidCredential", tt.token, err)
			}
			if svc.Verify(tt.token, "ana") {
				t.Error("invalid credential verifies")
			}
		})
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer := NewService("one-secret", time.Hour)
	verifier := NewService("another-secret", time.Hour)

	token, err := issuer.Issue("ana")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if verifier.Verify(token, "ana") {
		t.Error("credential signed with a different key verifies")
	}
}

// tamper flips part of the payload segment while keeping the token shape.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || len(parts[1]) == 0 {
		return token + "x"
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
