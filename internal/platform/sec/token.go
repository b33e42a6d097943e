// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically random, hex-encoded token
// of the given byte length.
//
// Used for refresh tokens and one-time verification links. The raw token is
// handed to the client; only its hash is ever persisted.
func GenerateSecureToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Unlike passwords, these tokens are high-entropy random strings, so a fast
// unsalted hash is sufficient for at-rest protection.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
