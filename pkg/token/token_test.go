package token

import (
	"testing"
	"time"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	signed, _, err := Generate(42, "admin", "s3cret", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := Parse(signed, "s3cret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if id != 42 {
		t.Fatalf("user id = %d, want 42", id)
	}
	if claims.Rol != "admin" {
		t.Fatalf("rol = %q, want admin", claims.Rol)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, _, err := Generate(1, "empleado", "right", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Parse(signed, "wrong"); err == nil {
		t.Fatal("a token signed with another secret must not parse")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	signed, _, err := Generate(1, "empleado", "s3cret", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := Parse(signed, "s3cret"); err == nil {
		t.Fatal("an expired token must not parse")
	}
}
