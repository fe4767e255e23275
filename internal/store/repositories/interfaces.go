package repositories

import (
	"context"

	"kopesha/internal/domain/loan"
)

// LoanRepository is the durable store for loan applications. Implementations
// return loan.ErrNotFound when no record matches.
type LoanRepository interface {
	Save(ctx context.Context, app *loan.Application) error
	FindByTrackingID(ctx context.Context, trackingID string) (*loan.Application, error)
	FindByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*loan.Application, error)
	List(ctx context.Context) ([]*loan.Application, error)

	// AttachCheckoutRequest overwrites any previous checkout request ID;
	// re-initiating a push starts a new correlation.
	AttachCheckoutRequest(ctx context.Context, id int64, checkoutRequestID string) error
	UpdateStatus(ctx context.Context, id int64, status loan.Status) error
	UpdateOffer(ctx context.Context, id int64, loanAmount, verificationFee *int) error
	SetMpesaMessage(ctx context.Context, id int64, message string) error
	Delete(ctx context.Context, id int64) error
}

// CallbackRepository is the append-only audit log of raw gateway callbacks.
type CallbackRepository interface {
	SaveCallback(ctx context.Context, cb *loan.GatewayCallback) error
	ListCallbacks(ctx context.Context, limit, offset int) ([]loan.GatewayCallback, error)
}
