package domain

import "time"

// PointsAccount holds the authoritative balance for one user. The invariant
// balance == total_earned - total_spent holds after every ledger operation,
// and balance never goes negative.
type PointsAccount struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Balance     int32     `json:"balance"`
	TotalEarned int32     `json:"total_earned"`
	TotalSpent  int32     `json:"total_spent"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}
