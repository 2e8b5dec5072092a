package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables mapped onto flags.
const EnvPrefix = "RESCRYPT"

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(version string) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "rescrypt [flags] command [flags]",
		Short: "Resource file encryption utility",
		Long: `Encrypts resource files in place at packaging time and decrypts them again.

Files are encrypted with AES-256-CBC using a key derived from a password and salt
(PBKDF2-HMAC-SHA256, 65536 iterations) and stored as base64 text. Applications
can decrypt them at runtime with the same password and salt.

Every flag can also be set through the environment (e.g. RESCRYPT_PASSWORD)
or a configuration file (--config).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bind(cmd, v)
		},
	}

	flags := root.PersistentFlags()

	flags.String("config", "", "Configuration file (yaml, toml or json)")
	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("verbose", "v", false, "Show debug output")

	flags.StringP("password", "p", "", "Password for key derivation")
	flags.String("password-file", "", "Path to a file whose first line is the password")
	flags.Bool("ask-password", false, "Read the password from the terminal or stdin")
	flags.String("salt", "", "Salt for key derivation")
	flags.String("salt-encoding", "utf8", "Encoding of --salt: utf8, hex or base64")

	flags.StringP("root", "r", ".", "Resource directory the patterns are resolved against")
	flags.StringArrayP("include", "i", nil, "Include glob pattern (repeatable); all files if none")
	flags.StringArrayP("exclude", "e", nil, "Exclude glob pattern (repeatable)")
	flags.String("include-from", "", "JSONC file with include patterns")
	flags.String("exclude-from", "", "JSONC file with exclude patterns")

	flags.IntP("parallel", "j", 1, "Number of files transformed concurrently")
	flags.Bool("dry", false, "List the files that would be processed without changing them")
	flags.Bool("stats", false, "Print statistics after processing")
	flags.Bool("preserve-timestamps", false, "Keep the modification time of rewritten files")

	root.AddCommand(
		NewEncryptCommand(v),
		NewDecryptCommand(v),
		NewCheckCommand(v),
		NewStringCommand(v),
		NewSaltCommand(),
	)

	return root
}

// bind connects the flags of the executing command, the environment and the
// optional configuration file to v.
func bind(cmd *cobra.Command, v *viper.Viper) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err //nolint:wrapcheck
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}
