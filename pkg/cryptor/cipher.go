package cryptor

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// zeroIV is the initialization vector used for every operation.
//
//nolint:gochecknoglobals // fixed by the file format
var zeroIV = make([]byte, aes.BlockSize)

// Cipher is an AES-256-CBC cipher bound to a key and a direction.
type Cipher struct {
	block     cipher.Block
	direction Direction
}

// NewCipher builds a cipher for the given key and direction.
func NewCipher(key Key, direction Direction) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrCipherInit, KeySize, len(key))
	}

	if direction != Encrypt && direction != Decrypt {
		return nil, fmt.Errorf("%w: unknown %v", ErrCipherInit, direction)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCipherInit, err)
	}

	return &Cipher{block: block, direction: direction}, nil
}

// Direction returns the direction the cipher was built for.
func (c *Cipher) Direction() Direction {
	return c.direction
}

// Apply runs the raw cipher over data: pad and encrypt, or decrypt and unpad.
// No text encoding is involved.
func (c *Cipher) Apply(data []byte) ([]byte, error) {
	if c.direction == Encrypt {
		return c.encrypt(data), nil
	}

	return c.decrypt(data)
}

func (c *Cipher) encrypt(plaintext []byte) []byte {
	padded := pkcs7Pad(plaintext, aes.BlockSize)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, zeroIV).CryptBlocks(ciphertext, padded)

	return ciphertext
}

func (c *Cipher) decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, ErrInvalidBlockSize)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(c.block, zeroIV).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return unpadded, nil
}
