package payhero

import "fmt"

// Error codes for the failure modes callers pattern-match on.
const (
	CodeInvalidPhone         = "invalid_phone"
	CodeGatewayError         = "gateway_error"
	CodeUnknownResponse      = "unknown_response"
	CodeMissingCorrelationID = "missing_correlation_id"
)

// Error is a typed gateway failure. RawBody carries the gateway's raw
// response for diagnostics when one was received.
type Error struct {
	Code    string
	Message string
	RawBody string
}

func (e *Error) Error() string {
	if e.RawBody != "" {
		return fmt.Sprintf("payhero: %s: %s (body=%s)", e.Code, e.Message, e.RawBody)
	}
	return fmt.Sprintf("payhero: %s: %s", e.Code, e.Message)
}
