package loan

import "time"

// GatewayCallback is the audit record of a raw gateway notification. One
// row per delivery; repeated callbacks for the same checkout request are
// stored as separate rows.
type GatewayCallback struct {
	ID                int64     `json:"id"`
	CheckoutRequestID string    `json:"checkoutRequestID"`
	ResultCode        int       `json:"resultCode"`
	ResultDesc        string    `json:"resultDesc"`
	Status            Status    `json:"status"`
	PayloadJSON       []byte    `json:"-"`
	ReceivedAt        time.Time `json:"receivedAt"`
}
