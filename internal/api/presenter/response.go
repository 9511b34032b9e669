package presenter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ryancicak/trino-databricks-authentication/internal/core"
)

type ErrorResponse struct {
	Error         string `json:"error"`
	Rejection     string `json:"rejection,omitempty"`
	CorrelationID string `json:"correlation_id"`
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	correlationID, _ := r.Context().Value("correlation_id").(string)
	resp := ErrorResponse{
		Error:         msg,
		CorrelationID: correlationID,
	}
	JSON(w, r, resp, status)
}

// Rejected writes a typed authentication rejection. Only the safe Reason
// reaches the client; wrapped diagnostics stay in server-side logs.
func Rejected(w http.ResponseWriter, r *http.Request, err error) {
	correlationID, _ := r.Context().Value("correlation_id").(string)

	var rej *core.Rejection
	if !errors.As(err, &rej) {
		Error(w, r, "authentication failed", http.StatusUnauthorized)
		return
	}

	resp := ErrorResponse{
		Error:         "authentication failed: " + rej.Reason,
		Rejection:     string(rej.Kind),
		CorrelationID: correlationID,
	}
	JSON(w, r, resp, StatusOf(rej.Kind))
}

// StatusOf maps a rejection kind to the HTTP status the gateway sees.
func StatusOf(kind core.RejectionKind) int {
	switch kind {
	case core.KindMissingToken, core.KindInvalidToken:
		return http.StatusUnauthorized
	case core.KindIdentityMismatch:
		return http.StatusForbidden
	case core.KindProviderUnavailable:
		return http.StatusServiceUnavailable
	case core.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
