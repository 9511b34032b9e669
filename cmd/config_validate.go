package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ryancicak/trino-databricks-authentication/internal/config"
	"github.com/ryancicak/trino-databricks-authentication/internal/resolver"
)

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			log.Error().Err(err).Msg("Configuration is invalid.")
			return BeQuietError{}
		}

		// also construct the resolver so that e.g. a missing workspace host
		// fails here and not on the first connection attempt
		if _, err := resolver.Build(cmd.Context(), cfg.Resolver); err != nil {
			log.Error().Err(err).Msg("Resolver configuration is invalid.")
			return BeQuietError{}
		}

		log.Info().Msg("Configuration is valid.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}
