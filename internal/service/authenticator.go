package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ryancicak/trino-databricks-authentication/internal/audit"
	"github.com/ryancicak/trino-databricks-authentication/internal/cache"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

// Authenticator verifies that a claimed username matches the identity the
// token actually belongs to. Successful resolutions are memoized in the
// token cache so that repeated connection attempts within the TTL never
// touch the identity provider.
type Authenticator struct {
	resolver core.Resolver
	cache    *cache.TokenCache
	auditor  core.Auditor
}

var _ core.Authenticator = (*Authenticator)(nil)

func NewAuthenticator(resolver core.Resolver, tokenCache *cache.TokenCache, auditor core.Auditor) *Authenticator {
	if auditor == nil {
		auditor = audit.NewNoopAuditor()
	}
	return &Authenticator{
		resolver: resolver,
		cache:    tokenCache,
		auditor:  auditor,
	}
}

func (a *Authenticator) Authenticate(ctx context.Context, username, token string) (*core.Principal, error) {
	logger := log.Ctx(ctx)
	reqID, _ := ctx.Value("correlation_id").(string)

	auditEntry := core.AuditEntry{
		ID:               reqID,
		Time:             time.Now(),
		Action:           "auth.verify",
		Username:         username,
		TokenFingerprint: audit.Fingerprint(token),
		Resolver:         a.resolver.Name(),
	}
	defer func() {
		if err := a.auditor.Log(auditEntry); err != nil {
			logger.Error().Err(err).Msg("failed to write audit log entry for verification")
		}
	}()

	if token == "" {
		auditEntry.Rejection = string(core.KindMissingToken)
		return nil, core.Reject(core.KindMissingToken, "no token provided")
	}

	identity, resolvedAt, fromCache := a.cache.Get(token)
	if !fromCache {
		resolved, err := a.resolver.Resolve(ctx, token)
		if err != nil {
			// a failed lookup is never stored; the next attempt with the
			// same token resolves again
			rej := asRejection(err)
			auditEntry.Rejection = string(rej.Kind)
			auditEntry.Error = rej.Reason
			if rej.Err != nil {
				auditEntry.Stacktrace = rej.Err.Error()
			}
			logger.Warn().
				Str("rejection", string(rej.Kind)).
				Str("resolver", a.resolver.Name()).
				Err(rej.Err).
				Msg("token resolution failed")
			return nil, rej
		}
		identity = resolved
		resolvedAt = time.Now()
		a.cache.Put(token, identity)
	}

	auditEntry.ResolvedIdentity = identity
	auditEntry.CacheHit = fromCache

	if !strings.EqualFold(username, identity) {
		auditEntry.Rejection = string(core.KindIdentityMismatch)
		// security-relevant: the token is valid, but for somebody else
		logger.Warn().
			Str("claimed", username).
			Str("resolved", identity).
			Msg("identity mismatch")
		return nil, core.Reject(core.KindIdentityMismatch,
			"identity mismatch: the token belongs to '"+identity+"' but you claimed to be '"+username+"'")
	}

	auditEntry.Granted = true
	logger.Info().
		Str("principal", identity).
		Bool("cache_hit", fromCache).
		Msg("authenticated")

	return &core.Principal{
		ID:         identity,
		VerifiedAt: resolvedAt,
		FromCache:  fromCache,
	}, nil
}

// asRejection normalizes resolver errors. Anything a resolver reports that
// is not already a typed Rejection counts as the provider being unavailable.
func asRejection(err error) *core.Rejection {
	var rej *core.Rejection
	if errors.As(err, &rej) {
		return rej
	}
	return core.RejectWrap(core.KindProviderUnavailable, "token resolution failed", err)
}
