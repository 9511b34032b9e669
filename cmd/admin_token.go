package cmd

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/ryancicak/trino-databricks-authentication/internal/config"
)

var adminTokenTTL time.Duration

// adminTokenCmd represents the admin-token command
var adminTokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Mint an admin session token from the configured signing key",
	Long: `Creates a short-lived admin session token signed with the server's
admin signing key. Use it with 'login' or pass it via DBXAUTH_TOKEN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Admin.SigningKey == "" {
			return fmt.Errorf("no admin signing key configured, admin endpoints are disabled")
		}

		now := time.Now()
		claims := jwt.MapClaims{
			"roles": []string{"admin"},
			"iat":   now.Unix(),
			"exp":   now.Add(adminTokenTTL).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.Admin.SigningKey))
		if err != nil {
			return fmt.Errorf("signing admin token: %w", err)
		}

		fmt.Println(signed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminTokenCmd)

	adminTokenCmd.Flags().DurationVar(&adminTokenTTL, "ttl", time.Hour, "Lifetime of the minted token")
}
