package cryptor

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 iteration count.
	Iterations = 65536
	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32
)

// Credential is the password and salt shared by the encrypting build and the
// decrypting application.
type Credential struct {
	Password string
	Salt     []byte
}

// Validate checks that both parts of the credential are present.
func (c Credential) Validate() error {
	if c.Password == "" || len(c.Salt) == 0 {
		return ErrInvalidCredential
	}

	return nil
}

// Key is derived key material.
type Key []byte

// DeriveKey derives a 256-bit key from the credential with PBKDF2-HMAC-SHA256.
// The password is taken as UTF-8 bytes.
func DeriveKey(cred Credential) (Key, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	return pbkdf2.Key([]byte(cred.Password), cred.Salt, Iterations, KeySize, sha256.New), nil
}
