package service

import (
	"context"
	"time"

	"points-backend/internal/domain"
)

type LedgerService interface {
	GetBalance(ctx context.Context, userID string) (int32, error)
	Credit(ctx context.Context, userID string, amount int32, description, details string) (int32, error)
	Debit(ctx context.Context, userID string, amount int32, description, details string) (int32, error)
	GetRecords(ctx context.Context, userID, typeFilter, timeRange string) ([]domain.PointsRecord, error)
}

type RedemptionService interface {
	// Redeem runs the full redemption workflow: contact resolution, code
	// consumption, quota and stock checks, ledger debit, record commit and
	// best-effort remote stock decrement.
	Redeem(ctx context.Context, userID, productID string, quantity int32, code string) (*domain.RedemptionRecord, error)

	// SendVerificationCode issues a fresh code for the user's contact handle
	// and delivers it. The code is returned for dev-mode convenience.
	SendVerificationCode(ctx context.Context, userID string) (string, error)

	ListRedemptions(ctx context.Context, userID, productID string, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RedemptionRecord, int32, error)
}

// VerificationService issues and consumes single-use, time-boxed codes keyed
// by contact handle. All state is in-memory; loss on restart is acceptable
// because codes are short-lived and can be re-requested.
type VerificationService interface {
	Issue(handle string) (string, error)
	Consume(handle, candidate string) error
}

// CodeSender delivers an issued verification code to a contact handle.
type CodeSender interface {
	SendCode(ctx context.Context, handle, code string, ttl time.Duration) error
}

// ProductClient is the boundary adapter to the remote product catalog.
type ProductClient interface {
	Fetch(ctx context.Context, productID string) (*domain.ProductSnapshot, error)
	DecrementStock(ctx context.Context, productID string, quantity int32, userID string) error
}

// IdentityClient resolves user profiles from the auth service.
type IdentityClient interface {
	GetUserInfo(ctx context.Context, userID string) (*domain.UserInfo, error)
}
