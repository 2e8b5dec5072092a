package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/rescrypt/internal/config"
	"github.com/idelchi/rescrypt/internal/logging"
	"github.com/idelchi/rescrypt/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags]",
		Short: "Validate that include/exclude patterns match files",
		Args:  cobra.NoArgs,
		RunE: run(v, func(_ *cobra.Command, _ []string, cfg *config.Config, log logging.Logger) error {
			return logic.RunCheck(cfg, log)
		}),
	}
}
