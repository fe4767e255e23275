// Package cache holds the ephemeral payment-status map keyed by checkout
// request ID. The durable loan record stays authoritative; this cache only
// accelerates polling and is safe to lose on restart.
package cache

import (
	"context"
	"time"
)

// State is the coarse payment state kept alongside the gateway's
// human-readable description.
type State string

const (
	StatePending   State = "pending"
	StateSuccess   State = "success"
	StateCancelled State = "cancelled"
	StateFailed    State = "failed"
)

// Entry is the last-known ephemeral status for one checkout request.
type Entry struct {
	State       State     `json:"state"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StatusCache is a concurrency-safe map from checkout request ID to Entry.
// Writes are whole-entry replacements; last write wins. Removing a missing
// key is a no-op.
type StatusCache interface {
	Put(ctx context.Context, checkoutRequestID string, e Entry) error
	Get(ctx context.Context, checkoutRequestID string) (Entry, bool, error)
	Remove(ctx context.Context, checkoutRequestID string) error
}
