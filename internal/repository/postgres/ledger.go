package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"points-backend/internal/domain"
	"points-backend/internal/repository"

	"github.com/google/uuid"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

const accountColumns = `id, user_id, balance, total_earned, total_spent, created_on, updated_on`

func (r *ledgerRepository) GetAccount(ctx context.Context, userID string) (*domain.PointsAccount, error) {
	if err := ensureAccount(ctx, r.db, userID); err != nil {
		return nil, err
	}
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM points_accounts WHERE user_id = $1`, userID)

	var acc domain.PointsAccount
	if err := row.Scan(&acc.ID, &acc.UserID, &acc.Balance, &acc.TotalEarned, &acc.TotalSpent, &acc.CreatedOn, &acc.UpdatedOn); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *ledgerRepository) Credit(ctx context.Context, userID string, amount int32, description, details string) (*domain.PointsRecord, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := ensureAccount(ctx, tx, userID); err != nil {
		return nil, err
	}

	// The UPDATE takes the row lock, so the balance snapshot and the record
	// append below are linearized with every other operation on this user.
	var balance int32
	err = tx.QueryRowContext(ctx,
		`UPDATE points_accounts
		 SET balance = balance + $1, total_earned = total_earned + $1, updated_on = now()
		 WHERE user_id = $2
		 RETURNING balance`, amount, userID).Scan(&balance)
	if err != nil {
		return nil, err
	}

	rec := &domain.PointsRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		Kind:        domain.RecordKindEarn,
		Points:      amount,
		Balance:     balance,
		Description: description,
		Details:     details,
	}
	if err := insertRecord(ctx, tx, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ledgerRepository) Debit(ctx context.Context, userID string, amount int32, description, details, relatedID, relatedKind string) (*domain.PointsRecord, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Conditional update: zero rows means the balance check failed and
	// nothing was mutated.
	var balance int32
	err = tx.QueryRowContext(ctx,
		`UPDATE points_accounts
		 SET balance = balance - $1, total_spent = total_spent + $1, updated_on = now()
		 WHERE user_id = $2 AND balance >= $1
		 RETURNING balance`, amount, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		var have int32
		err = tx.QueryRowContext(ctx,
			`SELECT balance FROM points_accounts WHERE user_id = $1`, userID).Scan(&have)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, &domain.InsufficientBalanceError{Balance: have, Required: amount}
	}
	if err != nil {
		return nil, err
	}

	rec := &domain.PointsRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		Kind:        domain.RecordKindSpend,
		Points:      -amount,
		Balance:     balance,
		Description: description,
		Details:     details,
		RelatedID:   relatedID,
		RelatedKind: relatedKind,
	}
	if err := insertRecord(ctx, tx, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ledgerRepository) ListRecords(ctx context.Context, userID string, kind domain.RecordKind, since time.Time, limit int32) ([]domain.PointsRecord, error) {
	query := `SELECT id, user_id, kind, points, balance, description, COALESCE(details, ''), COALESCE(related_id, ''), COALESCE(related_kind, ''), created_on
	          FROM points_records WHERE user_id = $1 AND created_on >= $2`
	args := []any{userID, since}
	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", len(args)+1)
		args = append(args, kind)
	}
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PointsRecord
	for rows.Next() {
		var rec domain.PointsRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Kind, &rec.Points, &rec.Balance, &rec.Description, &rec.Details, &rec.RelatedID, &rec.RelatedKind, &rec.CreatedOn); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ensureAccount lazily creates the zero-balance account row for userID.
func ensureAccount(ctx context.Context, db execer, userID string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO points_accounts (id, user_id, balance, total_earned, total_spent, created_on, updated_on)
		 VALUES ($1, $2, 0, 0, 0, now(), now())
		 ON CONFLICT (user_id) DO NOTHING`, uuid.NewString(), userID)
	return err
}

func insertRecord(ctx context.Context, tx *sql.Tx, rec *domain.PointsRecord) error {
	return tx.QueryRowContext(ctx,
		`INSERT INTO points_records (id, user_id, kind, points, balance, description, details, related_id, related_kind, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), now())
		 RETURNING created_on`,
		rec.ID, rec.UserID, rec.Kind, rec.Points, rec.Balance, rec.Description, rec.Details, rec.RelatedID, rec.RelatedKind,
	).Scan(&rec.CreatedOn)
}
