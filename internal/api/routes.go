package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/v1/about"
	VerifyRoute      = "/v1/verify"

	ListAuditsRoute = "/v1/admin/audit"
	CacheStatsRoute = "/v1/admin/cache"
)
