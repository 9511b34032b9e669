package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ryancicak/trino-databricks-authentication/internal/api/presenter"
	"github.com/ryancicak/trino-databricks-authentication/internal/buildinfo"
	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

type VerifyPayload struct {
	// User is the identity the connecting client claims (the Trino username).
	User string `json:"user"`
}

type VerifyResponse struct {
	Principal *core.Principal `json:"principal"`
}

func DecodePayload(r *http.Request, dest any, allowEmpty bool) error {
	switch r.Header.Get("Content-Type") {
	case "application/json", "":
		// strict encoding for JSON
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(dest); err != nil {
			if !errors.Is(err, io.EOF) || !allowEmpty {
				return err
			}
		}
		// ensure there's no extra data
		if dec.More() {
			return errors.New("extra data in request body")
		}
		return nil
	default:
		return errors.New("unsupported content type")
	}
}

// handleVerify processes one verification attempt: the claimed username
// travels in the JSON body, the token in the Authorization header (it is a
// secret and must stay out of URLs and logs).
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	var payload VerifyPayload
	if err := DecodePayload(r, &payload, false); err != nil {
		logger.Warn().Err(err).Msg("failed to decode verify request payload")
		presenter.Error(w, r, "invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.User == "" {
		presenter.Error(w, r, "missing 'user' in request payload", http.StatusBadRequest)
		return
	}

	authHeader := r.Header.Get("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))

	principal, err := s.authenticator.Authenticate(ctx, payload.User, token)
	if err != nil {
		presenter.Rejected(w, r, err)
		return
	}

	presenter.JSON(w, r, VerifyResponse{Principal: principal}, http.StatusOK)
}

// recentAuditor is implemented by auditors that can serve recent entries.
type recentAuditor interface {
	GetRecent(limit int) ([]core.AuditEntry, error)
}

func (s *Server) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	source, ok := s.auditor.(recentAuditor)
	if !ok {
		presenter.Error(w, r, "configured auditor does not support listing", http.StatusNotImplemented)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			presenter.Error(w, r, "invalid 'limit'", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := source.GetRecent(limit)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to read audit entries")
		presenter.Error(w, r, "failed to read audit entries", http.StatusInternalServerError)
		return
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}

type CacheStats struct {
	Entries    int   `json:"entries"`
	Capacity   int   `json:"capacity"`
	TTLSeconds int64 `json:"ttl_seconds"`
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, CacheStats{
		Entries:    s.tokenCache.Len(),
		Capacity:   s.tokenCache.Capacity(),
		TTLSeconds: int64(s.tokenCache.TTL().Seconds()),
	}, http.StatusOK)
}
