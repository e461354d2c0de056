package mutate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// DefaultSecretLength is the number of random bytes behind each generated secret.
const DefaultSecretLength = 64

// JWTSecretKeys returns the environment keys that receive a generated secret.
func JWTSecretKeys() []string {
	return []string{
		"JWT_SECRET_AUTH",
		"JWT_SECRET_REFRESH",
		"JWT_SECRET_CONFIRM_ACCOUNT",
		"JWT_SECRET_RESET_PASSWORD",
	}
}

// GenerateSecret reads length bytes from random and returns them hex encoded.
func GenerateSecret(random io.Reader, length int) (string, error) {
	buf := make([]byte, length)

	_, err := io.ReadFull(random, buf)
	if err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Secrets writes a fresh random secret to each key of an environment file.
type Secrets struct {
	File string
	Keys []string
	// Length defaults to DefaultSecretLength.
	Length int
	// Random defaults to crypto/rand.
	Random io.Reader
}

// Describe implements Mutation.
func (s Secrets) Describe() string {
	return "generate secrets in " + s.File
}

// Apply implements Mutation.
func (s Secrets) Apply(root string) error {
	length := s.Length
	if length <= 0 {
		length = DefaultSecretLength
	}

	random := s.Random
	if random == nil {
		random = rand.Reader
	}

	vars := make([]EnvVar, 0, len(s.Keys))

	for _, key := range s.Keys {
		secret, err := GenerateSecret(random, length)
		if err != nil {
			return err
		}

		vars = append(vars, EnvVar{Key: key, Value: secret})
	}

	return SetEnv{File: s.File, Vars: vars}.Apply(root)
}
