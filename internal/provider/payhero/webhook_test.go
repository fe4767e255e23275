package payhero

import (
	"errors"
	"testing"
)

func TestParseCallbackTopLevel(t *testing.T) {
	body := []byte(`{"CheckoutRequestID":"ws_CO_1","ResultCode":0,"ResultDesc":"ok"}`)
	evt, err := ParseCallback(body)
	if err != nil {
		t.Fatal(err)
	}
	if evt.CheckoutRequestID != "ws_CO_1" {
		t.Errorf("id = %q", evt.CheckoutRequestID)
	}
	if evt.ResultCode != 0 {
		t.Errorf("code = %d", evt.ResultCode)
	}
	if evt.ResultDesc != "ok" {
		t.Errorf("desc = %q", evt.ResultDesc)
	}
}

func TestParseCallbackNestedEnvelope(t *testing.T) {
	body := []byte(`{"response":{"User_Reference":"ws_CO_2","ResultCode":1032,"Status":"cancelled by user"}}`)
	evt, err := ParseCallback(body)
	if err != nil {
		t.Fatal(err)
	}
	if evt.CheckoutRequestID != "ws_CO_2" {
		t.Errorf("id = %q", evt.CheckoutRequestID)
	}
	if evt.ResultCode != 1032 {
		t.Errorf("code = %d", evt.ResultCode)
	}
	if evt.ResultDesc != "cancelled by user" {
		t.Errorf("desc = %q", evt.ResultDesc)
	}
}

func TestParseCallbackIDPreference(t *testing.T) {
	// Top-level CheckoutRequestID beats both nested variants.
	body := []byte(`{"CheckoutRequestID":"top","response":{"CheckoutRequestID":"nested","User_Reference":"ref"}}`)
	evt, err := ParseCallback(body)
	if err != nil {
		t.Fatal(err)
	}
	if evt.CheckoutRequestID != "top" {
		t.Errorf("id = %q, want top", evt.CheckoutRequestID)
	}

	// Nested CheckoutRequestID beats User_Reference.
	body = []byte(`{"response":{"CheckoutRequestID":"nested","User_Reference":"ref"}}`)
	evt, err = ParseCallback(body)
	if err != nil {
		t.Fatal(err)
	}
	if evt.CheckoutRequestID != "nested" {
		t.Errorf("id = %q, want nested", evt.CheckoutRequestID)
	}
}

func TestParseCallbackResultCodePreference(t *testing.T) {
	// Nested code wins over top-level.
	body := []byte(`{"CheckoutRequestID":"x","ResultCode":0,"response":{"ResultCode":1032}}`)
	evt, err := ParseCallback(body)
	if err != nil {
		t.Fatal(err)
	}
	if evt.ResultCode != 1032 {
		t.Errorf("code = %d, want 1032", evt.ResultCode)
	}
}

func TestParseCallbackStringResultCode(t *testing.T) {
	body := []byte(`{"CheckoutRequestID":"x","ResultCode":"1032"}`)
	evt, err := ParseCallback(body)
	if err != nil {
		t.Fatal(err)
	}
	if evt.ResultCode != 1032 {
		t.Errorf("code = %d, want 1032", evt.ResultCode)
	}
}

func TestParseCallbackDefaults(t *testing.T) {
	body := []byte(`{"CheckoutRequestID":"x"}`)
	evt, err := ParseCallback(body)
	if err != nil {
		t.Fatal(err)
	}
	if evt.ResultCode != UnknownResultCode {
		t.Errorf("code = %d, want %d", evt.ResultCode, UnknownResultCode)
	}
	if evt.ResultDesc != "No description" {
		t.Errorf("desc = %q", evt.ResultDesc)
	}
}

func TestParseCallbackMissingCorrelationID(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"ResultCode":0}`,
		`{"response":{"ResultCode":0,"ResultDesc":"ok"}}`,
		`not json`,
	} {
		_, err := ParseCallback([]byte(body))
		if err == nil {
			t.Errorf("ParseCallback(%s): expected error", body)
			continue
		}
		var pe *Error
		if !errors.As(err, &pe) || pe.Code != CodeMissingCorrelationID {
			t.Errorf("ParseCallback(%s): expected %s, got %v", body, CodeMissingCorrelationID, err)
		}
	}
}
