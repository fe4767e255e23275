package payhero

import "strings"

// NormalizeMSISDN canonicalizes a Kenyan phone number to the 254... form
// the gateway expects. Accepted inputs: leading +, embedded spaces, leading
// 0, bare 7XXXXXXXX, or already-international 254XXXXXXXXX. Any other
// prefix is rejected. Digit counts are not checked; the gateway does its
// own validation.
func NormalizeMSISDN(phone string) (string, error) {
	p := strings.ReplaceAll(phone, "+", "")
	p = strings.ReplaceAll(p, " ", "")

	switch {
	case strings.HasPrefix(p, "0"):
		return "254" + p[1:], nil
	case strings.HasPrefix(p, "7"):
		return "254" + p, nil
	case strings.HasPrefix(p, "254"):
		return p, nil
	}
	return "", &Error{Code: CodeInvalidPhone, Message: "invalid phone number format: " + phone}
}
