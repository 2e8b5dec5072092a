package cryptor

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// Transform derives the key, builds a cipher in the requested direction and
// applies it. Encryption output is base64 text; decryption input is expected
// to be base64 text, surrounding whitespace is ignored.
func Transform(data []byte, direction Direction, cred Credential) ([]byte, error) {
	key, err := DeriveKey(cred)
	if err != nil {
		return nil, err
	}

	c, err := NewCipher(key, direction)
	if err != nil {
		return nil, err
	}

	if direction == Encrypt {
		ciphertext, err := c.Apply(data)
		if err != nil {
			return nil, err
		}

		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(ciphertext)))
		base64.StdEncoding.Encode(encoded, ciphertext)

		return encoded, nil
	}

	trimmed := bytes.TrimSpace(data)

	ciphertext := make([]byte, base64.StdEncoding.DecodedLen(len(trimmed)))

	n, err := base64.StdEncoding.Strict().Decode(ciphertext, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrDecryptionFailed, ErrInvalidEncoding, err)
	}

	return c.Apply(ciphertext[:n])
}

// EncryptBytes encrypts raw bytes and returns base64 text bytes.
func EncryptBytes(raw []byte, password string, salt []byte) ([]byte, error) {
	return Transform(raw, Encrypt, Credential{Password: password, Salt: salt})
}

// DecryptBytes decrypts base64 text bytes produced by EncryptBytes.
func DecryptBytes(encrypted []byte, password string, salt []byte) ([]byte, error) {
	return Transform(encrypted, Decrypt, Credential{Password: password, Salt: salt})
}

// EncryptToString encrypts a UTF-8 string into base64 text.
func EncryptToString(raw, password string, salt []byte) (string, error) {
	out, err := EncryptBytes([]byte(raw), password, salt)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// DecryptFromString decrypts base64 text into the original UTF-8 string.
func DecryptFromString(encrypted, password string, salt []byte) (string, error) {
	out, err := DecryptBytes([]byte(encrypted), password, salt)
	if err != nil {
		return "", err
	}

	return string(out), nil
}
