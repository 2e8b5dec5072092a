package cryptor

import (
	"fmt"
	"strings"
)

// Direction selects whether a Cipher encrypts or decrypts.
type Direction byte

const (
	// Encrypt turns plaintext into ciphertext.
	Encrypt Direction = iota
	// Decrypt turns ciphertext into plaintext.
	Decrypt
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("direction(%d)", byte(d))
	}
}

// ParseDirection parses "encrypt"/"enc" or "decrypt"/"dec".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "enc":
		return Encrypt, nil
	case "decrypt", "dec":
		return Decrypt, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}
