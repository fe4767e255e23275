package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"kopesha/internal/domain/loan"
	"kopesha/internal/provider/payhero"
	loansvc "kopesha/internal/services/loan"

	"github.com/rs/zerolog/log"
)

type stkPushReq struct {
	TrackingID string `json:"trackingId"`
	Phone      string `json:"phone"`
	Amount     int    `json:"amount"`
}

// STKPush initiates the verification-fee push for a loan application.
func STKPush(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in stkPushReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
			return
		}

		checkoutRequestID, err := svc.InitiatePush(r.Context(), in.TrackingID, in.Phone, in.Amount)
		if err != nil {
			writeSTKPushError(w, in.TrackingID, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message":           "STK Push sent successfully",
			"checkoutRequestID": checkoutRequestID,
		})
	}
}

func writeSTKPushError(w http.ResponseWriter, trackingID string, err error) {
	if errors.Is(err, loan.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": "Loan not found for trackingId: " + trackingID,
		})
		return
	}

	var pe *payhero.Error
	if errors.As(err, &pe) {
		switch pe.Code {
		case payhero.CodeInvalidPhone:
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": pe.Message})
		case payhero.CodeGatewayError:
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":       pe.Message,
				"rawResponse": pe.RawBody,
			})
		default: // unknown_response
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error":       pe.Message,
				"rawResponse": pe.RawBody,
			})
		}
		return
	}

	log.Error().Err(err).Str("tracking_id", trackingID).Msg("stk push failed")
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error": "STK Push failed: " + err.Error(),
	})
}
