package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verifyToken string

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <username>",
	Short: "Verify that a token belongs to a user",
	Long: `Sends a single verification request to a running dbxauth server.
The token is read from --token or the DBXAUTH_VERIFY_TOKEN environment
variable so that it never shows up in shell history by accident.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		token := verifyToken
		if token == "" {
			token = os.Getenv("DBXAUTH_VERIFY_TOKEN")
		}

		cli, err := getClient()
		if err != nil {
			return err
		}

		principal, correlationID, err := cli.Verify(cmd.Context(), username, token)
		if err != nil {
			return logError(err, correlationID, "verification failed")
		}

		logSuccess("token belongs to %s", bold(principal.ID))
		if principal.FromCache {
			fmt.Printf("  %s (resolved at %s)\n", faint("served from cache"), principal.VerifiedAt.Format("15:04:05"))
		}
		log.Debug().Str("correlation_id", correlationID).Msg("verification done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyToken, "token", "", "Token to verify (prefer DBXAUTH_VERIFY_TOKEN)")
}
