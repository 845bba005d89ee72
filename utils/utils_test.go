package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{1234.5678, 1234.57},
		{1049.994, 1049.99},
		{1000 * 1.05, 1050.00},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRound6(t *testing.T) {
	if got := Round6(8.4432004999); got != 8.443200 {
		t.Fatalf("Round6 = %v, want 8.443200", got)
	}
	if got := Round6(100.0000005); got != 100.000001 {
		t.Fatalf("Round6 = %v, want 100.000001", got)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("engineer@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	parsed, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["email"] != "engineer@example.com" {
		t.Fatalf("email claim = %v", claims["email"])
	}
	if claims["type"] != "access" {
		t.Fatalf("type claim = %v", claims["type"])
	}

	if _, err := ValidateJWT(token + "tampered"); err == nil {
		t.Fatal("tampered token validated")
	}
}

func TestRefreshTokenCarriesSession(t *testing.T) {
	token, err := GenerateRefreshToken("engineer@example.com", "session-123")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	parsed, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["type"] != "refresh" {
		t.Fatalf("type claim = %v, want refresh", claims["type"])
	}
	if claims["sessionId"] != "session-123" {
		t.Fatalf("sessionId claim = %v", claims["sessionId"])
	}
}
