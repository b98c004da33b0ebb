package jwt

import (
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "admin", "ADMIN", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Username != "admin" || claims.Role != "ADMIN" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "officer", "OFFICER", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := ValidateAccessToken(token, "another-secret"); err == nil {
		t.Error("ValidateAccessToken accepted a token signed with a different secret")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, "officer", "OFFICER", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); err == nil {
		t.Error("ValidateAccessToken accepted an expired token")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-123", testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if claims.UserID != 7 || claims.TokenID != "token-id-123" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestGetExpiryTime(t *testing.T) {
	expiry := GetExpiryTime(7)
	min := time.Now().Add(6*24*time.Hour + 23*time.Hour)
	max := time.Now().Add(7*24*time.Hour + time.Hour)
	if expiry.Before(min) || expiry.After(max) {
		t.Errorf("GetExpiryTime(7) = %v, want about seven days out", expiry)
	}
}
