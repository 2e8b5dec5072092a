package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags]",
		Aliases: []string{"dec"},
		Short:   "Decrypt resource files in place",
		Args:    cobra.NoArgs,
		RunE: run(v, func(cmd *cobra.Command, _ []string, cfg *config.Config, log logging.Logger) error {
			summary, err := logic.DecryptResources(cmd.Context(), cfg, log)
			if err != nil {
				return err //nolint:wrapcheck
			}

			log.Infof("%s", summary)

			return nil
		}),
	}
}
