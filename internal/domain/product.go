package domain

// ProductSnapshot is the read-only view of a catalog product owned by the
// remote product service. Only the fields the redemption flow needs.
type ProductSnapshot struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Points       int32  `json:"points"` // cost per unit
	Stock        int32  `json:"stock"`
	MonthlyLimit int32  `json:"monthly_limit"` // 0 means unlimited
}
