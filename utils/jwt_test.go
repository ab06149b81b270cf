package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", "u@test.dev", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	subject, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if subject != "user-123" {
		t.Errorf("subject = %q, want user-123", subject)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	if _, err := VerifyToken("not.a.token"); err == nil {
		t.Error("garbage token verified")
	}

	expired, err := GenerateToken("user-123", "u@test.dev", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyToken(expired); err == nil {
		t.Error("expired token verified")
	}
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("abc")
	b := HashToken("abc")
	if a != b {
		t.Error("hash not deterministic")
	}
	if a == HashToken("abd") {
		t.Error("distinct tokens share a hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
