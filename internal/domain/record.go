package domain

import "time"

type RecordKind string

const (
	RecordKindEarn  RecordKind = "EARN"
	RecordKindSpend RecordKind = "SPEND"
)

// PointsRecord is one append-only ledger entry. Records are immutable once
// written and ordered by creation time per user.
type PointsRecord struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Kind        RecordKind `json:"kind"`
	Points      int32      `json:"points"`  // signed delta: positive for EARN, negative for SPEND
	Balance     int32      `json:"balance"` // balance snapshot immediately after this record
	Description string     `json:"description"`
	Details     string     `json:"details,omitempty"`
	RelatedID   string     `json:"related_id,omitempty"`
	RelatedKind string     `json:"related_kind,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
}
