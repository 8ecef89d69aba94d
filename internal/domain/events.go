package domain

import "time"

// NotificationResolved is emitted once per request after its outcome is known.
type NotificationResolved struct {
	RequestID string    `json:"requestId"`
	Backend   string    `json:"backend"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

const (
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)
