package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"kopesha/internal/provider/payhero"
	loansvc "kopesha/internal/services/loan"

	"github.com/rs/zerolog/log"
)

// MpesaCallback receives the gateway's asynchronous payment notification.
// A callback that resolves to no known record still gets a 200 so the
// gateway does not retry forever; only an unextractable correlation ID is
// a client error.
func MpesaCallback(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid callback payload"})
			return
		}

		if err := svc.HandleCallback(r.Context(), body); err != nil {
			var pe *payhero.Error
			if errors.As(err, &pe) && pe.Code == payhero.CodeMissingCorrelationID {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error": "Missing CheckoutRequestID/User_Reference",
				})
				return
			}
			log.Error().Err(err).Msg("callback processing failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error": "Callback processing failed",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"message": "Callback processed"})
	}
}

// ListCallbacks exposes the raw callback audit log for debugging.
func ListCallbacks(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := 50, 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}
		if v := r.URL.Query().Get("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}
		items, err := svc.ListCallbacks(r.Context(), limit, offset)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "db error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": items})
	}
}
