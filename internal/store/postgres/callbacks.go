package postgres

import (
	"context"

	"kopesha/internal/domain/loan"
)

// SaveCallback appends one raw gateway notification to the audit log.
func (r *Repo) SaveCallback(ctx context.Context, cb *loan.GatewayCallback) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO payment_callbacks
			(checkout_request_id, result_code, result_desc, status, payload_json, received_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`,
		cb.CheckoutRequestID, cb.ResultCode, cb.ResultDesc, string(cb.Status),
		cb.PayloadJSON, cb.ReceivedAt,
	).Scan(&cb.ID)
}

func (r *Repo) ListCallbacks(ctx context.Context, limit, offset int) ([]loan.GatewayCallback, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, checkout_request_id, result_code, result_desc, status, received_at
		  FROM payment_callbacks
		 ORDER BY id DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []loan.GatewayCallback
	for rows.Next() {
		var cb loan.GatewayCallback
		var status string
		if err := rows.Scan(&cb.ID, &cb.CheckoutRequestID, &cb.ResultCode, &cb.ResultDesc, &status, &cb.ReceivedAt); err != nil {
			return nil, err
		}
		cb.Status = loan.Status(status)
		out = append(out, cb)
	}
	return out, rows.Err()
}
