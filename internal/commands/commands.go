package commands

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/idelchi/gogen/pkg/key"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/encryption"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/pkg/cryptor"
)

// NewSaltCommand creates a command printing a random salt.
func NewSaltCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salt [flags]",
		Short: "Generate a random salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			size, _ := cmd.Flags().GetInt("bytes")
			encoding, _ := cmd.Flags().GetString("encoding")

			if size < 1 {
				return fmt.Errorf("salt size must be positive, got %d", size)
			}

			salt, err := key.New(size)
			if err != nil {
				return fmt.Errorf("generating salt: %w", err)
			}

			switch encoding {
			case config.SaltHex:
				fmt.Fprintln(cmd.OutOrStdout(), salt.AsHex())
			case config.SaltBase64:
				fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(salt))
			default:
				return fmt.Errorf("unsupported salt encoding %q", encoding)
			}

			return nil
		},
	}

	const defaultSaltSize = 16

	cmd.Flags().IntP("bytes", "n", defaultSaltSize, "Number of random bytes")
	cmd.Flags().String("encoding", config.SaltHex, "Output encoding: hex or base64")

	return cmd
}

// NewStringCommand creates a command transforming single values, the way an
// application decrypts a resource at runtime.
func NewStringCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "string [flags] [values...]",
		Short: "Encrypt or decrypt values given as arguments or on stdin",
		Args:  cobra.ArbitraryArgs,
		RunE: run(v, func(cmd *cobra.Command, args []string, cfg *config.Config, _ logging.Logger) error {
			decrypt, _ := cmd.Flags().GetBool("decrypt")

			direction := cryptor.Encrypt
			if decrypt {
				direction = cryptor.Decrypt
			}

			proc, err := encryption.NewProcessor(cfg, direction, logging.Discard())
			if err != nil {
				return err //nolint:wrapcheck
			}

			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}

				args = []string{strings.TrimRight(string(data), "\r\n")}
			}

			for _, arg := range args {
				out, err := proc.TransformValue(arg)
				if err != nil {
					return err //nolint:wrapcheck
				}

				fmt.Fprintln(cmd.OutOrStdout(), out)
			}

			return nil
		}),
	}

	cmd.Flags().BoolP("decrypt", "d", false, "Decrypt instead of encrypt")

	return cmd
}
