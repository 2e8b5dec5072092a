package cryptor

import "errors"

var (
	// ErrInvalidCredential is returned when the password or the salt is empty.
	ErrInvalidCredential = errors.New("invalid credential: password and salt must be non-empty")
	// ErrCipherInit is returned when the cipher cannot be built from the key.
	ErrCipherInit = errors.New("cipher initialization failed")
	// ErrDecryptionFailed is returned when data was not produced by the matching
	// encryption with the same credential.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrInvalidPadding is returned when PKCS#7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when ciphertext length is not aligned with the AES block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
	// ErrInvalidEncoding is returned when encrypted text is not valid base64.
	ErrInvalidEncoding = errors.New("ciphertext is not valid base64")
)
