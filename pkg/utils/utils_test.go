package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidatePIN(t *testing.T) {
	tests := []struct {
		pin string
		ok  bool
	}{
		{"0000", true},
		{"1234", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"١٢٣٤", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidatePIN(tt.pin)
		if (err == nil) != tt.ok {
			t.Errorf("ValidatePIN(%q) = %v, want ok=%v", tt.pin, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrMalformedPIN) {
			t.Errorf("ValidatePIN(%q) err = %v", tt.pin, err)
		}
	}
}

func TestHashAndCheckPIN(t *testing.T) {
	hash, err := HashPIN("4321")
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}
	if !CheckPIN("4321", hash) {
		t.Error("correct PIN rejected")
	}
	if CheckPIN("1234", hash) {
		t.Error("wrong PIN accepted")
	}
	if _, err := HashPIN("12"); err == nil {
		t.Error("short PIN hashed")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	id := uuid.New()
	token, exp, err := m.GenerateToken(id, "Ana", "mesero")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("expiry in the past: %s", exp)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.StaffID != id || claims.Name != "Ana" || claims.Role != "mesero" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := NewJWTManager("other", time.Hour).ValidateToken(token); err == nil {
		t.Error("token accepted with the wrong secret")
	}

	expired := NewJWTManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.GenerateToken(id, "Ana", "mesero")
	if _, err := m.ValidateToken(old); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()
	if got, err := ParseUUID(id.String()); err != nil || got != id {
		t.Errorf("ParseUUID(%s) = %v, %v", id, got, err)
	}
	if _, err := ParseUUID("nope"); err == nil {
		t.Error("invalid uuid accepted")
	}
}
