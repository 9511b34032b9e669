package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// auditCacheCmd represents the audit cache command
var auditCacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show token cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cli, err := getClient()
		if err != nil {
			return err
		}

		log.Info().Msg("Fetching cache statistics...")
		stats, correlation, err := cli.CacheStats(cmd.Context())
		if err != nil {
			return logError(err, correlation, "failed to fetch cache statistics")
		}

		fmt.Println(bold("\n── Token Cache ──"))
		fmt.Printf("  %s:  %d / %d\n", faint("Entries"), stats.Entries, stats.Capacity)
		fmt.Printf("  %s:      %ds\n", faint("TTL"), stats.TTLSeconds)
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditCacheCmd)
}
