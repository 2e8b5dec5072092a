// Package commands provides the command-line interface for the rescrypt tool.
//
// It implements commands for:
//   - encrypting resources in place
//   - decrypting resources in place
//   - checking include/exclude patterns
//   - encrypting or decrypting single values
//   - generating salts
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/logging"
)

// action is the body of a command once the configuration is loaded and valid.
type action func(cmd *cobra.Command, args []string, cfg *config.Config, log logging.Logger) error

// run returns a RunE handler that loads the configuration from v, handles
// --show and --ask-password, validates and then calls fn.
func run(v *viper.Viper, fn action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if err := v.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}

		if cfg.Show {
			return show(cmd.OutOrStdout(), cfg)
		}

		if v.GetBool("ask-password") && cfg.Password == "" && cfg.PasswordFile == "" {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			cfg.Password = password
		}

		if err := cfg.Validate(); err != nil {
			return err //nolint:wrapcheck
		}

		log := logging.New(cfg.Quiet, cfg.Verbose)
		log.Out = cmd.OutOrStdout()
		log.Err = cmd.ErrOrStderr()

		return fn(cmd, args, &cfg, log)
	}
}

// show prints the configuration with secrets masked.
func show(w io.Writer, cfg config.Config) error {
	masked, err := cfg.Display()
	if err != nil {
		return err //nolint:wrapcheck
	}

	out, err := yaml.Marshal(masked)
	if err != nil {
		return fmt.Errorf("rendering configuration: %w", err)
	}

	_, err = w.Write(out)

	return err //nolint:wrapcheck
}

// readPassword reads a password without echo from a terminal, or the first
// line of the command input otherwise. In the latter case the command input is
// replaced by the buffered reader, so later reads see the rest of the stream.
func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()

	//nolint:gosec // file descriptors fit in int
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

		password, err := term.ReadPassword(int(file.Fd()))

		fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}

		return string(password), nil
	}

	reader := bufio.NewReader(in)
	cmd.SetIn(reader)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
