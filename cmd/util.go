package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/ryancicak/trino-databricks-authentication/internal/cliconfig"
	"github.com/ryancicak/trino-databricks-authentication/pkg/client"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()

	redCross   = color.New(color.FgRed).Sprint("✗")
	greenCheck = color.New(color.FgGreen).Sprint("✓")
)

// BeQuietError signals that the error was already reported to the user and
// Execute should just set the exit code.
type BeQuietError struct{}

func (BeQuietError) Error() string { return "" }

func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(ServerAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured (use --server or set DBXAUTH_ADDR)")
	}

	var token string
	if cfg, err := cliconfig.Load(); err == nil {
		if cred, err := cfg.GetCredential(server); err == nil { // token prio 1: saved credential
			token = cred.Token
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Debug().Err(err).Msg("could not load saved credentials")
	}

	if envToken := os.Getenv("DBXAUTH_TOKEN"); envToken != "" { // token prio 2: env var
		token = envToken
	}

	return client.New(server, client.WithAuthToken(token)), nil
}

func logError(err error, correlationID, msg string) error {
	if correlationID != "" {
		log.Error().Msgf("%s %s (correlation ID: %s)", redCross, msg, correlationID)
	} else {
		log.Error().Msgf("%s %s", redCross, msg)
	}
	log.Error().Msgf("error: %v", err)
	return BeQuietError{}
}

func logSuccess(format string, args ...any) {
	log.Info().Msgf("%s "+format, append([]any{greenCheck}, args...)...)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
