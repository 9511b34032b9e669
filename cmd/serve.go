package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ryancicak/trino-databricks-authentication/internal/api"
	"github.com/ryancicak/trino-databricks-authentication/internal/audit"
	"github.com/ryancicak/trino-databricks-authentication/internal/cache"
	"github.com/ryancicak/trino-databricks-authentication/internal/config"
	"github.com/ryancicak/trino-databricks-authentication/internal/resolver"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		// initialize: load resolver, cache and auditor
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log.Info().Str("type", cfg.Resolver.Type).Msg("Initializing resolver...")
		res, err := resolver.Build(cmd.Context(), cfg.Resolver)
		if err != nil {
			return fmt.Errorf("building resolver: %w", err)
		}

		auditor, err := audit.Build(cfg.Audit)
		if err != nil {
			return fmt.Errorf("building auditor: %w", err)
		}
		defer func() {
			if err := auditor.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close auditor")
			}
		}()

		tokenCache := cache.NewTokenCache(cfg.Cache.TTL(), cfg.Cache.Capacity())
		log.Info().
			Dur("ttl", cfg.Cache.TTL()).
			Int("capacity", cfg.Cache.Capacity()).
			Msg("Token cache ready")

		// setup server
		srv := api.NewServer(res, tokenCache, auditor)

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes([]byte(cfg.Admin.SigningKey)),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "address to listen on")
}
