package postgres

import (
	"context"
	"database/sql"
	"errors"

	"kopesha/internal/domain/loan"

	"github.com/jackc/pgx/v5"
)

const loanColumns = `id, name, phone, id_number, loan_type, loan_amount, verification_fee,
	status, tracking_id, checkout_request_id, mpesa_message, mpesa_message_date, application_date`

// Save inserts a new application or updates an existing one by ID.
func (r *Repo) Save(ctx context.Context, a *loan.Application) error {
	if a.ID == 0 {
		return r.db.QueryRow(ctx, `
			INSERT INTO loan_applications
				(name, phone, id_number, loan_type, loan_amount, verification_fee,
				 status, tracking_id, application_date)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id`,
			a.Name, a.Phone, a.IDNumber, a.LoanType, a.LoanAmount, a.VerificationFee,
			string(a.Status), a.TrackingID, a.ApplicationDate,
		).Scan(&a.ID)
	}
	_, err := r.db.Exec(ctx, `
		UPDATE loan_applications
		   SET name=$1, phone=$2, id_number=$3, loan_type=$4, loan_amount=$5,
		       verification_fee=$6, status=$7
		 WHERE id=$8`,
		a.Name, a.Phone, a.IDNumber, a.LoanType, a.LoanAmount,
		a.VerificationFee, string(a.Status), a.ID)
	return err
}

func (r *Repo) FindByTrackingID(ctx context.Context, trackingID string) (*loan.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+loanColumns+`
		FROM loan_applications WHERE tracking_id=$1`, trackingID)
	return scanLoan(row)
}

func (r *Repo) FindByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*loan.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+loanColumns+`
		FROM loan_applications WHERE checkout_request_id=$1`, checkoutRequestID)
	return scanLoan(row)
}

func (r *Repo) List(ctx context.Context) ([]*loan.Application, error) {
	rows, err := r.db.Query(ctx, `SELECT `+loanColumns+`
		FROM loan_applications ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*loan.Application
	for rows.Next() {
		a, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AttachCheckoutRequest records the gateway correlation ID. An existing ID
// is overwritten; the orphaned cache entry for the old one is accepted.
func (r *Repo) AttachCheckoutRequest(ctx context.Context, id int64, checkoutRequestID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE loan_applications SET checkout_request_id=$1 WHERE id=$2`,
		checkoutRequestID, id)
	return err
}

func (r *Repo) UpdateStatus(ctx context.Context, id int64, status loan.Status) error {
	_, err := r.db.Exec(ctx, `
		UPDATE loan_applications SET status=$1 WHERE id=$2`, string(status), id)
	return err
}

func (r *Repo) UpdateOffer(ctx context.Context, id int64, loanAmount, verificationFee *int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE loan_applications
		   SET loan_amount      = COALESCE($1, loan_amount),
		       verification_fee = COALESCE($2, verification_fee)
		 WHERE id=$3`, loanAmount, verificationFee, id)
	return err
}

func (r *Repo) SetMpesaMessage(ctx context.Context, id int64, message string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE loan_applications SET mpesa_message=$1, mpesa_message_date=now() WHERE id=$2`,
		message, id)
	return err
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM loan_applications WHERE id=$1`, id)
	return err
}

func scanLoan(row pgx.Row) (*loan.Application, error) {
	var a loan.Application
	var checkoutID, mpesaMsg sql.NullString
	var msgDate sql.NullTime
	var status string

	err := row.Scan(
		&a.ID, &a.Name, &a.Phone, &a.IDNumber, &a.LoanType, &a.LoanAmount,
		&a.VerificationFee, &status, &a.TrackingID, &checkoutID, &mpesaMsg,
		&msgDate, &a.ApplicationDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, loan.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	a.Status = loan.Status(status)
	if checkoutID.Valid {
		a.CheckoutRequestID = checkoutID.String
	}
	if mpesaMsg.Valid {
		a.MpesaMessage = mpesaMsg.String
	}
	if msgDate.Valid {
		t := msgDate.Time
		a.MpesaMessageDate = &t
	}
	return &a, nil
}
