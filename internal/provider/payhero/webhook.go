package payhero

import (
	"encoding/json"
	"strconv"
)

// UnknownResultCode is recorded when a callback carries no result code at
// all; reconciliation treats it like any other non-zero code.
const UnknownResultCode = -1

// CallbackEvent is a gateway notification normalized from the envelope
// variants PayHero has shipped over time. All business logic runs against
// this one shape.
type CallbackEvent struct {
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
	RawJSON           []byte
}

// ParseCallback extracts the correlation ID, result code, and description
// from a callback body. PayHero has delivered fields both at the top level
// and nested under a "response" key; both layouts are accepted.
//
// Field preference, first match wins:
//   - id:   CheckoutRequestID, response.CheckoutRequestID, response.User_Reference
//   - code: response.ResultCode, ResultCode, else -1
//   - desc: response.ResultDesc, ResultDesc, response.Status, else "No description"
//
// A body with no resolvable correlation ID is rejected; everything else
// about the shape is tolerated.
func ParseCallback(body []byte) (CallbackEvent, error) {
	var root map[string]any
	if err := json.Unmarshal(body, &root); err != nil || root == nil {
		return CallbackEvent{}, &Error{Code: CodeMissingCorrelationID, Message: "invalid callback payload", RawBody: string(body)}
	}

	nested, _ := root["response"].(map[string]any)

	id := stringField(root, "CheckoutRequestID")
	if id == "" {
		id = stringField(nested, "CheckoutRequestID")
	}
	if id == "" {
		id = stringField(nested, "User_Reference")
	}
	if id == "" {
		return CallbackEvent{}, &Error{Code: CodeMissingCorrelationID, Message: "missing CheckoutRequestID/User_Reference"}
	}

	code, ok := intField(nested, "ResultCode")
	if !ok {
		code, ok = intField(root, "ResultCode")
	}
	if !ok {
		code = UnknownResultCode
	}

	desc := stringField(nested, "ResultDesc")
	if desc == "" {
		desc = stringField(root, "ResultDesc")
	}
	if desc == "" {
		desc = stringField(nested, "Status")
	}
	if desc == "" {
		desc = "No description"
	}

	return CallbackEvent{CheckoutRequestID: id, ResultCode: code, ResultDesc: desc, RawJSON: body}, nil
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// intField tolerates the number-vs-string serialization drift seen across
// gateway versions.
func intField(m map[string]any, key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
