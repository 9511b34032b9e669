package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ryancicak/trino-databricks-authentication/internal/cliconfig"
)

var loginCmd = &cobra.Command{
	Use:   "login <admin-token>",
	Short: "Save an admin session token for a dbxauth server",
	Long: `Stores an admin session token locally so that future admin requests
(like reading the audit log) are authenticated automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loginToken := args[0]
		if loginToken == "" {
			return fmt.Errorf("token cannot be empty")
		}

		server := viper.GetString(ServerAddrKey)
		if server == "" {
			return fmt.Errorf("server address not configured (use --server or set DBXAUTH_ADDR)")
		}
		u, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("parsing server URL: %w", err)
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = &cliconfig.CLIConfig{}
		}
		if cfg.Credentials == nil {
			cfg.Credentials = make(map[string]*cliconfig.Credential)
		}
		cfg.Credentials[u.Host] = &cliconfig.Credential{
			Token: loginToken,
		}
		if err := cliconfig.Save(cfg); err != nil {
			return logError(err, "", "could not save credentials")
		}

		logSuccess("saved credentials for %s", bold(u.Host))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
