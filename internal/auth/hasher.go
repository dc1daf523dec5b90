package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	autherrors "go-leave/internal/auth/errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

// Hasher turns a plaintext password into a stored credential digest and
// checks a password against one.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// SHA256Hasher stores the lowercase hex SHA-256 digest of the password.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Compare(hash, password string) bool {
	computed, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(hash)), []byte(computed)) == 1
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewHasher resolves a hasher by its configured name.
func NewHasher(name string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HasherSHA256:
		return SHA256Hasher{}, nil
	case HasherBcrypt:
		return BcryptHasher{}, nil
	default:
		return nil, autherrors.ErrUnknownHasher
	}
}
