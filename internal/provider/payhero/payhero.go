// Package payhero talks to the PayHero push-payment gateway. PayHero
// authenticates every request with static Basic credentials; there is no
// token exchange or refresh.
package payhero

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"kopesha/internal/config"

	"github.com/rs/zerolog/log"
)

const paymentsPath = "/api/v2/payments"

type STKPushReq struct {
	Amount       int
	Phone        string // already normalized 254... form
	Reference    string // loan tracking ID, echoed back by the gateway
	CustomerName string
}

type STKPushResp struct {
	CheckoutRequestID string
}

type Provider struct {
	cfg   config.PayHeroCfg
	basic string // precomputed Authorization header value
	http  *http.Client
}

func New(cfg config.PayHeroCfg) *Provider {
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Password))
	return &Provider{
		cfg:   cfg,
		basic: "Basic " + creds,
		http:  &http.Client{Timeout: cfg.Timeout},
	}
}

// STKPush asks the gateway to prompt the customer's phone for payment.
// Single attempt, no retry; the asynchronous outcome arrives on the
// configured callback URL.
func (p *Provider) STKPush(ctx context.Context, r STKPushReq) (*STKPushResp, error) {
	name := r.CustomerName
	if name == "" {
		name = "Customer"
	}
	payload := map[string]any{
		"amount":             r.Amount,
		"phone_number":       r.Phone,
		"channel_id":         p.cfg.ChannelID,
		"provider":           "m-pesa",
		"external_reference": r.Reference,
		"customer_name":      name,
		"callback_url":       p.cfg.CallbackURL,
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", p.cfg.BaseURL+paymentsPath, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", p.basic)

	res, err := p.http.Do(req)
	if err != nil {
		return nil, &Error{Code: CodeGatewayError, Message: fmt.Sprintf("stk push request failed: %v", err)}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Code: CodeGatewayError, Message: fmt.Sprintf("reading stk push response: %v", err)}
	}

	var root map[string]any
	if err := json.Unmarshal(body, &root); err != nil {
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			return nil, &Error{Code: CodeGatewayError, Message: "stk push failed: " + res.Status, RawBody: string(body)}
		}
		return nil, &Error{Code: CodeUnknownResponse, Message: "unparseable response from PayHero", RawBody: string(body)}
	}

	// Error-shaped bodies: an "error" field, or success=false.
	if msg, failed := gatewayFailure(root); failed {
		log.Error().Str("reference", r.Reference).Str("message", msg).Msg("payhero rejected stk push")
		return nil, &Error{Code: CodeGatewayError, Message: msg, RawBody: string(body)}
	}

	if id, ok := root["CheckoutRequestID"].(string); ok && id != "" {
		return &STKPushResp{CheckoutRequestID: id}, nil
	}

	log.Error().Str("reference", r.Reference).Msg("unknown payhero response shape")
	return nil, &Error{Code: CodeUnknownResponse, Message: "unknown response from PayHero", RawBody: string(body)}
}

func gatewayFailure(root map[string]any) (string, bool) {
	if v, ok := root["error"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
		return failureMessage(root), true
	}
	if s, ok := root["success"].(bool); ok && !s {
		return failureMessage(root), true
	}
	return "", false
}

func failureMessage(root map[string]any) string {
	if s, ok := root["message"].(string); ok && s != "" {
		return s
	}
	return "Unknown error from PayHero"
}
