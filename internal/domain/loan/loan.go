package loan

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Status is the lifecycle state of a loan application. Push initiation
// moves an application to PENDING; callback reconciliation moves it to one
// of the terminal states.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusFailed    Status = "FAILED"
)

// Terminal reports whether no further transition is expected.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled || s == StatusFailed
}

// ErrNotFound is returned by repositories when no application matches the
// given tracking or checkout request identifier.
var ErrNotFound = errors.New("loan not found")

// Application is a loan application record. CheckoutRequestID is empty
// until a verification-fee push has been initiated; once set it is unique
// across all records. Re-initiating a push overwrites it and starts a new
// correlation.
type Application struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	IDNumber          string     `json:"idNumber"`
	LoanType          string     `json:"loanType"`
	LoanAmount        int        `json:"loanAmount"`
	VerificationFee   int        `json:"verificationFee"`
	Status            Status     `json:"status"`
	TrackingID        string     `json:"trackingId"`
	CheckoutRequestID string     `json:"checkoutRequestID,omitempty"`
	MpesaMessage      string     `json:"mpesaMessage,omitempty"`
	MpesaMessageDate  *time.Time `json:"mpesaMessageDate,omitempty"`
	ApplicationDate   time.Time  `json:"applicationDate"`
}

// NewTrackingID generates the human-facing reference shown to applicants,
// e.g. LON-C123456L9876543.
func NewTrackingID() string {
	return fmt.Sprintf("LON-C%dL%d", 100000+rand.IntN(900000), 1000000+rand.IntN(9000000))
}
