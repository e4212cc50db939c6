package repository

import (
	"context"
	"time"

	"points-backend/internal/domain"
)

type LedgerRepository interface {
	// GetAccount returns the account for userID, creating a zero-balance
	// account on first access.
	GetAccount(ctx context.Context, userID string) (*domain.PointsAccount, error)

	// Credit atomically increases balance and total_earned and appends an
	// EARN record carrying the resulting balance.
	Credit(ctx context.Context, userID string, amount int32, description, details string) (*domain.PointsRecord, error)

	// Debit atomically checks balance >= amount, decreases balance, increases
	// total_spent and appends a SPEND record. On a short balance it returns
	// *domain.InsufficientBalanceError without any mutation. relatedID and
	// relatedKind link the record to the business object that caused the
	// spend (empty for plain debits).
	Debit(ctx context.Context, userID string, amount int32, description, details, relatedID, relatedKind string) (*domain.PointsRecord, error)

	// ListRecords returns records for userID newest first, optionally
	// filtered by kind, created on or after since, capped at limit.
	ListRecords(ctx context.Context, userID string, kind domain.RecordKind, since time.Time, limit int32) ([]domain.PointsRecord, error)
}

type RedemptionRepository interface {
	Create(ctx context.Context, rec *domain.RedemptionRecord) error
	GetByID(ctx context.Context, id string) (*domain.RedemptionRecord, error)

	// MarkCompleted and MarkFailed move a PENDING record to its terminal
	// status. The transition happens at most once; a second call is an error.
	MarkCompleted(ctx context.Context, id, couponCode string, points int32) error
	MarkFailed(ctx context.Context, id, reason string) error

	// CountMonthlyCompleted counts COMPLETED redemptions for the user/product
	// pair in the calendar month containing at.
	CountMonthlyCompleted(ctx context.Context, userID, productID string, at time.Time) (int32, error)

	List(ctx context.Context, userID, productID string, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RedemptionRecord, int32, error)
}

type StockSyncRepository interface {
	RecordFailure(ctx context.Context, f *domain.StockSyncFailure) error
	ListUnsynced(ctx context.Context, limit int32) ([]domain.StockSyncFailure, error)
	MarkSynced(ctx context.Context, id string) error
	MarkAttempt(ctx context.Context, id, lastError string) error
}
