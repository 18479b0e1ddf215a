package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtSecret signs creator tokens. Overridable in tests.
var jwtSecret = []byte(secretFromEnv())

func secretFromEnv() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "dev-secret-change"
}

// CreatorTokenClaims binds a creator credential to one normalized room code.
type CreatorTokenClaims struct {
	Room string `json:"room"`
	jwt.RegisteredClaims
}

// MintCreatorToken issues the credential handed to the first creator of a
// room. The token is the client-held "is-creator" flag made verifiable.
func MintCreatorToken(room string) (string, error) {
	claims := &CreatorTokenClaims{
		Room: room,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}

// ValidateCreatorToken verifies the signature and returns the claims.
// Callers must still compare claims.Room against the room being acted on.
func ValidateCreatorToken(tokenStr string) (*CreatorTokenClaims, error) {
	claims := &CreatorTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
