package domain

import "time"

type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "PENDING"
	RedemptionStatusCompleted RedemptionStatus = "COMPLETED"
	RedemptionStatusFailed    RedemptionStatus = "FAILED"
)

// RedemptionRecord tracks one redemption attempt from PENDING to exactly one
// terminal status. Records are never deleted.
type RedemptionRecord struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	ProductID  string           `json:"product_id"`
	Quantity   int32            `json:"quantity"`
	Points     int32            `json:"points"` // points charged, set on completion
	Status     RedemptionStatus `json:"status"`
	CouponCode string           `json:"coupon_code,omitempty"`
	FailReason string           `json:"fail_reason,omitempty"`
	CreatedOn  time.Time        `json:"created_on"`
	UpdatedOn  time.Time        `json:"updated_on"`
}

// StockSyncFailure records a remote stock decrement that did not land after
// the local commit. The reconciliation sweep retries these until synced.
type StockSyncFailure struct {
	ID           string    `json:"id"`
	RedemptionID string    `json:"redemption_id"`
	ProductID    string    `json:"product_id"`
	UserID       string    `json:"user_id"`
	Quantity     int32     `json:"quantity"`
	Synced       bool      `json:"synced"`
	Attempts     int32     `json:"attempts"`
	LastError    string    `json:"last_error,omitempty"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
