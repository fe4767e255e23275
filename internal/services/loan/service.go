// Package loan orchestrates the verification-fee payment lifecycle:
// push initiation, callback reconciliation, and status exposure, plus the
// application CRUD surface around it.
package loan

import (
	"context"
	"strings"
	"time"

	"kopesha/internal/cache"
	"kopesha/internal/domain/loan"
	"kopesha/internal/metrics"
	"kopesha/internal/provider/payhero"
	"kopesha/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

// Gateway is the outbound push-payment dependency. Satisfied by
// *payhero.Provider; tests inject a fake.
type Gateway interface {
	STKPush(ctx context.Context, r payhero.STKPushReq) (*payhero.STKPushResp, error)
}

type Service struct {
	repo      repositories.LoanRepository
	callbacks repositories.CallbackRepository
	cache     cache.StatusCache
	gw        Gateway
}

func NewService(repo repositories.LoanRepository, callbacks repositories.CallbackRepository, c cache.StatusCache, gw Gateway) *Service {
	return &Service{repo: repo, callbacks: callbacks, cache: c, gw: gw}
}

type ApplyInput struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	IDNumber        string `json:"idNumber"`
	LoanType        string `json:"loanType"`
	LoanAmount      int    `json:"loanAmount"`
	VerificationFee int    `json:"verificationFee"`
}

// Apply registers a new loan application with a fresh tracking ID.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (*loan.Application, error) {
	a := &loan.Application{
		Name:            in.Name,
		Phone:           in.Phone,
		IDNumber:        in.IDNumber,
		LoanType:        in.LoanType,
		LoanAmount:      in.LoanAmount,
		VerificationFee: in.VerificationFee,
		Status:          loan.StatusPending,
		TrackingID:      loan.NewTrackingID(),
		ApplicationDate: time.Now(),
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	log.Info().Str("tracking_id", a.TrackingID).Msg("loan application created")
	return a, nil
}

// InitiatePush asks the gateway to prompt the applicant's phone for the
// verification fee and records the returned checkout request ID. Returns
// the checkout request ID on success.
func (s *Service) InitiatePush(ctx context.Context, trackingID, phone string, amount int) (string, error) {
	a, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return "", err
	}

	msisdn, err := payhero.NormalizeMSISDN(phone)
	if err != nil {
		metrics.IncSTKPush("invalid_phone")
		return "", err
	}

	log.Info().Str("tracking_id", trackingID).Str("phone", msisdn).Int("amount", amount).
		Msg("initiating stk push")

	out, err := s.gw.STKPush(ctx, payhero.STKPushReq{
		Amount:       amount,
		Phone:        msisdn,
		Reference:    a.TrackingID,
		CustomerName: a.Name,
	})
	if err != nil {
		metrics.IncSTKPush("error")
		return "", err
	}

	// Persist the correlation before seeding the cache; the durable record
	// is the source of truth.
	if err := s.repo.AttachCheckoutRequest(ctx, a.ID, out.CheckoutRequestID); err != nil {
		return "", err
	}
	if a.Status == "" || a.Status == loan.StatusNew {
		if err := s.repo.UpdateStatus(ctx, a.ID, loan.StatusPending); err != nil {
			return "", err
		}
	}

	if err := s.cache.Put(ctx, out.CheckoutRequestID, cache.Entry{
		State:       cache.StatePending,
		Description: "PayHero STK Push sent",
		UpdatedAt:   time.Now(),
	}); err != nil {
		log.Error().Err(err).Str("checkout_request_id", out.CheckoutRequestID).Msg("status cache put failed")
	}

	metrics.IncSTKPush("ok")
	log.Info().Str("tracking_id", trackingID).Str("checkout_request_id", out.CheckoutRequestID).
		Msg("stk push initiated")
	return out.CheckoutRequestID, nil
}

// HandleCallback reconciles one asynchronous gateway notification. A
// callback whose checkout request ID matches no record is absorbed: the
// gateway must not be made to retry for something we cannot correlate.
func (s *Service) HandleCallback(ctx context.Context, body []byte) error {
	evt, err := payhero.ParseCallback(body)
	if err != nil {
		return err
	}

	status := mapResultCode(evt.ResultCode)

	if err := s.callbacks.SaveCallback(ctx, &loan.GatewayCallback{
		CheckoutRequestID: evt.CheckoutRequestID,
		ResultCode:        evt.ResultCode,
		ResultDesc:        evt.ResultDesc,
		Status:            status,
		PayloadJSON:       evt.RawJSON,
		ReceivedAt:        time.Now(),
	}); err != nil {
		// Audit log only; reconciliation still proceeds.
		log.Error().Err(err).Str("checkout_request_id", evt.CheckoutRequestID).Msg("callback audit save failed")
	}

	a, err := s.repo.FindByCheckoutRequestID(ctx, evt.CheckoutRequestID)
	if err == loan.ErrNotFound {
		metrics.IncCallback("unmatched")
		log.Warn().Str("checkout_request_id", evt.CheckoutRequestID).Msg("callback for unknown checkout request")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, a.ID, status); err != nil {
		return err
	}
	if err := s.cache.Put(ctx, evt.CheckoutRequestID, cache.Entry{
		State:       cacheState(status),
		Description: evt.ResultDesc,
		UpdatedAt:   time.Now(),
	}); err != nil {
		log.Error().Err(err).Str("checkout_request_id", evt.CheckoutRequestID).Msg("status cache put failed")
	}

	metrics.IncCallback(strings.ToLower(string(status)))
	log.Info().Str("tracking_id", a.TrackingID).Str("checkout_request_id", evt.CheckoutRequestID).
		Int("result_code", evt.ResultCode).Str("status", string(status)).
		Msg("payment callback reconciled")
	return nil
}

// StatusResult is the polling payload. Absence of a record is reported
// inside the payload, never as a transport error; clients rely on that.
type StatusResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// PaymentStatus returns the durable status for a checkout request ID. The
// ephemeral cache is deliberately not consulted.
func (s *Service) PaymentStatus(ctx context.Context, checkoutRequestID string) (StatusResult, error) {
	a, err := s.repo.FindByCheckoutRequestID(ctx, checkoutRequestID)
	if err == loan.ErrNotFound {
		return StatusResult{Status: "error", Message: "Loan not found"}, nil
	}
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{Status: string(a.Status), Message: "Status fetched successfully"}, nil
}

// Delete removes an application and, when a push was initiated, its cache
// entry.
func (s *Service) Delete(ctx context.Context, trackingID string) error {
	a, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return err
	}
	if a.CheckoutRequestID != "" {
		if err := s.cache.Remove(ctx, a.CheckoutRequestID); err != nil {
			log.Error().Err(err).Str("checkout_request_id", a.CheckoutRequestID).Msg("status cache remove failed")
		}
	}
	log.Info().Str("tracking_id", trackingID).Msg("loan application deleted")
	return nil
}

func (s *Service) List(ctx context.Context) ([]*loan.Application, error) {
	return s.repo.List(ctx)
}

// SaveVerifyMessage attaches the applicant's M-Pesa confirmation SMS text
// to their record for manual verification.
func (s *Service) SaveVerifyMessage(ctx context.Context, trackingID, message string) error {
	a, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return err
	}
	return s.repo.SetMpesaMessage(ctx, a.ID, message)
}

// MessageItem is one row of the manual-verification listing.
type MessageItem struct {
	TrackingID   string      `json:"trackingId"`
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	MpesaMessage string      `json:"mpesaMessage"`
	Date         interface{} `json:"date"`
	Status       string      `json:"status"`
}

func (s *Service) Messages(ctx context.Context) ([]MessageItem, error) {
	apps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []MessageItem
	for _, a := range apps {
		if a.MpesaMessage == "" {
			continue
		}
		out = append(out, MessageItem{
			TrackingID:   a.TrackingID,
			Name:         a.Name,
			Phone:        a.Phone,
			MpesaMessage: a.MpesaMessage,
			Date:         a.MpesaMessageDate,
			Status:       string(a.Status),
		})
	}
	return out, nil
}

// UpdateOffer adjusts the offered loan amount and/or verification fee.
func (s *Service) UpdateOffer(ctx context.Context, trackingID string, loanAmount, verificationFee *int) error {
	a, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return err
	}
	return s.repo.UpdateOffer(ctx, a.ID, loanAmount, verificationFee)
}

func (s *Service) ListCallbacks(ctx context.Context, limit, offset int) ([]loan.GatewayCallback, error) {
	return s.callbacks.ListCallbacks(ctx, limit, offset)
}

// mapResultCode is the gateway's result-code contract: 0 paid, 1032
// cancelled by the customer, everything else (including the unknown
// sentinel) failed.
func mapResultCode(code int) loan.Status {
	switch code {
	case 0:
		return loan.StatusPaid
	case 1032:
		return loan.StatusCancelled
	default:
		return loan.StatusFailed
	}
}

func cacheState(st loan.Status) cache.State {
	switch st {
	case loan.StatusPaid:
		return cache.StateSuccess
	case loan.StatusCancelled:
		return cache.StateCancelled
	default:
		return cache.StateFailed
	}
}
