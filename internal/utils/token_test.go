package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestCreatorTokenRoundTrip(t *testing.T) {
	prev := jwtSecret
	t.Cleanup(func() { jwtSecret = prev })
	jwtSecret = []byte("secret-key")

	tokenStr, err := MintCreatorToken("AB12CD")
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	claims, err := ValidateCreatorToken(tokenStr)
	if err != nil {
		t.Fatalf("expected valid token, got error %v", err)
	}
	if claims.Room != "AB12CD" {
		t.Fatalf("unexpected claims: %#v", claims)
	}
}

func TestCreatorTokenWrongSecret(t *testing.T) {
	prev := jwtSecret
	t.Cleanup(func() { jwtSecret = prev })
	jwtSecret = []byte("secret-a")

	badToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &CreatorTokenClaims{
		Room: "AB12CD",
	}).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ValidateCreatorToken(badToken); err == nil {
		t.Fatalf("expected validation failure")
	}
}

func TestCreatorTokenUnexpectedMethod(t *testing.T) {
	prev := jwtSecret
	t.Cleanup(func() { jwtSecret = prev })
	jwtSecret = []byte("secret-a")

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	rsaToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &CreatorTokenClaims{
		Room: "AB12CD",
	}).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ValidateCreatorToken(rsaToken); err == nil {
		t.Fatalf("expected rejection of non-HMAC token")
	}
}

func TestCreatorTokenGarbage(t *testing.T) {
	if _, err := ValidateCreatorToken("not-a-token"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
