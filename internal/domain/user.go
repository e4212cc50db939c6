package domain

// UserInfo is the identity profile owned by the auth service. Phone and email
// are the contact handles verification codes are delivered to.
type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}
