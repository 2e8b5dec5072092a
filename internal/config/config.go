// Package config holds the configuration surface of a resource transform.
package config

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/showa-93/go-mask"
)

// Salt encodings accepted for the salt value.
const (
	SaltUTF8   = "utf8"
	SaltHex    = "hex"
	SaltBase64 = "base64"
)

// Config is the configuration for one encrypt or decrypt invocation.
// It is built per command and passed by value down to the processor.
type Config struct {
	// Password used for key derivation.
	Password string `label:"--password" mapstructure:"password" mask:"filled" validate:"required_without=PasswordFile,exclusive=PasswordFile" yaml:"password"`
	// PasswordFile is a file whose first line is the password.
	PasswordFile string `label:"--password-file" mapstructure:"password-file" yaml:"password-file"`
	// Salt used for key derivation, interpreted according to SaltEncoding.
	Salt string `label:"--salt" mapstructure:"salt" mask:"filled" validate:"required" yaml:"salt"`
	// SaltEncoding is one of utf8, hex or base64.
	SaltEncoding string `label:"--salt-encoding" mapstructure:"salt-encoding" validate:"oneof=utf8 hex base64" yaml:"salt-encoding"`

	// Root is the resource directory patterns are resolved against.
	Root string `label:"--root" mapstructure:"root" validate:"required" yaml:"root"`
	// Include patterns select files; empty selects everything.
	Include []string `label:"--include" mapstructure:"include" yaml:"include"`
	// Exclude patterns drop files even if they are included.
	Exclude []string `label:"--exclude" mapstructure:"exclude" yaml:"exclude"`
	// IncludeFrom is a JSONC file with additional include patterns.
	IncludeFrom string `label:"--include-from" mapstructure:"include-from" yaml:"include-from"`
	// ExcludeFrom is a JSONC file with additional exclude patterns.
	ExcludeFrom string `label:"--exclude-from" mapstructure:"exclude-from" yaml:"exclude-from"`

	// Parallel is the number of files transformed concurrently.
	Parallel int `label:"--parallel" mapstructure:"parallel" validate:"min=1" yaml:"parallel"`
	// PreserveTimestamps keeps the modification time of rewritten files.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps" yaml:"preserve-timestamps"`

	Dry     bool `mapstructure:"dry"     yaml:"dry"`
	Stats   bool `mapstructure:"stats"   yaml:"stats"`
	Quiet   bool `mapstructure:"quiet"   yaml:"quiet"`
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
	Show    bool `mapstructure:"show"    yaml:"-"`

	// Files is the resolved file set, relative to Root.
	Files []string `mapstructure:"-" yaml:"-"`
}

// Display returns a copy of the configuration with secrets masked.
func (c Config) Display() (Config, error) {
	masked, err := mask.Mask(c)
	if err != nil {
		return Config{}, fmt.Errorf("masking configuration: %w", err)
	}

	return masked, nil
}

// ResolvePassword returns the password from the flag or the password file.
// Only the first line of the file is used, without its line ending.
func (c Config) ResolvePassword() (string, error) {
	if c.PasswordFile == "" {
		return c.Password, nil
	}

	data, err := os.ReadFile(c.PasswordFile)
	if err != nil {
		return "", fmt.Errorf("reading password file: %w", err)
	}

	password, _, _ := strings.Cut(string(data), "\n")

	return strings.TrimSuffix(password, "\r"), nil
}

// DecodeSalt returns the salt bytes according to SaltEncoding.
func (c Config) DecodeSalt() ([]byte, error) {
	switch c.SaltEncoding {
	case SaltUTF8, "":
		return []byte(c.Salt), nil
	case SaltHex:
		salt, err := hex.DecodeString(c.Salt)
		if err != nil {
			return nil, fmt.Errorf("decoding hex salt: %w", err)
		}

		return salt, nil
	case SaltBase64:
		salt, err := base64.StdEncoding.DecodeString(c.Salt)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 salt: %w", err)
		}

		return salt, nil
	default:
		return nil, fmt.Errorf("unknown salt encoding %q", c.SaltEncoding)
	}
}
