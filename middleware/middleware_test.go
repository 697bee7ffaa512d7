package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return signed
}

func TestParseTokenRoundTrip(t *testing.T) {
	signed := mintToken(t, testSecret, jwt.MapClaims{
		"user_id": "user-1",
		"email":   "driver@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseToken(signed, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims["user_id"] != "user-1" {
		t.Fatalf("expected user_id claim, got %v", claims["user_id"])
	}
	if claims["email"] != "driver@example.com" {
		t.Fatalf("expected email claim, got %v", claims["email"])
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed := mintToken(t, "other-secret", jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	if _, err := ParseToken(signed, testSecret); err == nil {
		t.Fatalf("expected error for token signed with another secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	signed := mintToken(t, testSecret, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := ParseToken(signed, testSecret); err == nil {
		t.Fatalf("expected error for expired token")
	}
}
