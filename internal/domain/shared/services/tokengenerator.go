package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// TokenGenerator issues opaque bearer tokens. The plain token leaves the
// server exactly once; only its hash is persisted for lookup.
type TokenGenerator interface {
	GenerateAccessToken(prefix string) (plainToken string, tokenHash string, err error)
	HashToken(plainToken string) string
	VerifyToken(plainToken, tokenHash string) bool
}

type DefaultTokenGenerator struct{}

func NewTokenGenerator() TokenGenerator {
	return &DefaultTokenGenerator{}
}

func (g *DefaultTokenGenerator) GenerateAccessToken(prefix string) (string, string, error) {
	tokenBytes := make([]byte, 32)
	_, err := rand.Read(tokenBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plainToken := prefix + "_" + base64.RawURLEncoding.EncodeToString(tokenBytes)
	tokenHash := g.HashToken(plainToken)

	return plainToken, tokenHash, nil
}

func (g *DefaultTokenGenerator) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

func (g *DefaultTokenGenerator) VerifyToken(plainToken, tokenHash string) bool {
	computedHash := g.HashToken(plainToken)
	return subtle.ConstantTimeCompare([]byte(computedHash), []byte(tokenHash)) == 1
}
