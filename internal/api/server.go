package api

import (
	"net/http"

	"github.com/ryancicak/trino-databricks-authentication/internal/api/middleware"
	"github.com/ryancicak/trino-databricks-authentication/internal/audit"
	"github.com/ryancicak/trino-databricks-authentication/internal/cache"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
	"github.com/ryancicak/trino-databricks-authentication/internal/service"
)

type Server struct {
	authenticator core.Authenticator
	tokenCache    *cache.TokenCache
	auditor       core.Auditor
}

func NewServer(
	resolver core.Resolver,
	tokenCache *cache.TokenCache,
	auditor core.Auditor,
) *Server {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}

	return &Server{
		authenticator: service.NewAuthenticator(resolver, tokenCache, auditor),
		tokenCache:    tokenCache,
		auditor:       auditor,
	}
}

func (s *Server) Routes(adminSigningKey []byte) http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)

	// the verification route called by the gateway on every connection attempt
	mux.HandleFunc("POST "+VerifyRoute, s.handleVerify)

	// admin routes, only mounted when a signing key is configured
	if len(adminSigningKey) > 0 {
		adminMux := http.NewServeMux()
		adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleAdminAudit)
		adminMux.HandleFunc("GET "+CacheStatsRoute, s.handleCacheStats)
		mux.Handle("/v1/admin/", middleware.AdminAuth(adminSigningKey)(adminMux))
	}

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				mux)))
}
