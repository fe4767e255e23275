package handlers

import (
	"net/http"

	loansvc "kopesha/internal/services/loan"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PaymentStatus reports the durable payment status for a checkout request
// ID. "Not found" is part of the payload, not a transport error; polling
// clients depend on that.
func PaymentStatus(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checkoutRequestID := chi.URLParam(r, "checkoutRequestID")

		res, err := svc.PaymentStatus(r.Context(), checkoutRequestID)
		if err != nil {
			log.Error().Err(err).Str("checkout_request_id", checkoutRequestID).Msg("status lookup failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "status lookup failed"})
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
