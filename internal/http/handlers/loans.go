package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"kopesha/internal/domain/loan"
	loansvc "kopesha/internal/services/loan"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ApplyLoan creates a loan application and returns it with its tracking ID.
func ApplyLoan(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in loansvc.ApplyInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
			return
		}
		a, err := svc.Apply(r.Context(), in)
		if err != nil {
			log.Error().Err(err).Msg("apply failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to save application"})
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func ListLoans(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps, err := svc.List(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "db error"})
			return
		}
		if apps == nil {
			apps = []*loan.Application{}
		}
		writeJSON(w, http.StatusOK, apps)
	}
}

func DeleteLoan(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trackingID := chi.URLParam(r, "trackingId")

		err := svc.Delete(r.Context(), trackingID)
		if errors.Is(err, loan.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":      "Loan not found",
				"trackingId": trackingID,
			})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("tracking_id", trackingID).Msg("delete failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "delete failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":    "Loan deleted successfully",
			"trackingId": trackingID,
		})
	}
}

type verifyMessageReq struct {
	TrackingID   string `json:"trackingId"`
	MpesaMessage string `json:"mpesaMessage"`
}

// VerifyMessage stores the applicant's M-Pesa confirmation SMS for manual
// review.
func VerifyMessage(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in verifyMessageReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.TrackingID == "" || in.MpesaMessage == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing trackingId or mpesaMessage"})
			return
		}

		err := svc.SaveVerifyMessage(r.Context(), in.TrackingID, in.MpesaMessage)
		if errors.Is(err, loan.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Loan not found"})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("tracking_id", in.TrackingID).Msg("verify-message save failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Server error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":    "M-Pesa message saved successfully",
			"trackingId": in.TrackingID,
		})
	}
}

func MpesaMessages(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Messages(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "db error"})
			return
		}
		if items == nil {
			items = []loansvc.MessageItem{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

type updateOfferReq struct {
	TrackingID      string `json:"trackingId"`
	LoanAmount      *int   `json:"loanAmount"`
	VerificationFee *int   `json:"verificationFee"`
}

// UpdateOffer adjusts the offered loan amount and verification fee.
func UpdateOffer(svc *loansvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in updateOfferReq
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
			return
		}

		err := svc.UpdateOffer(r.Context(), in.TrackingID, in.LoanAmount, in.VerificationFee)
		if errors.Is(err, loan.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Loan not found"})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("tracking_id", in.TrackingID).Msg("update-offer failed")
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "update failed"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Loan offer saved"})
	}
}
