package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags]",
		Aliases: []string{"enc"},
		Short:   "Encrypt resource files in place",
		Args:    cobra.NoArgs,
		RunE: run(v, func(cmd *cobra.Command, _ []string, cfg *config.Config, log logging.Logger) error {
			summary, err := logic.EncryptResources(cmd.Context(), cfg, log)
			if err != nil {
				return err //nolint:wrapcheck
			}

			log.Infof("%s", summary)

			return nil
		}),
	}
}
