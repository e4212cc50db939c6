package postgres

import (
	"context"
	"database/sql"

	"points-backend/internal/domain"
	"points-backend/internal/repository"

	"github.com/google/uuid"
)

type stockSyncRepository struct {
	db *sql.DB
}

func NewStockSyncRepository(db *sql.DB) repository.StockSyncRepository {
	return &stockSyncRepository{db: db}
}

func (r *stockSyncRepository) RecordFailure(ctx context.Context, f *domain.StockSyncFailure) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return r.db.QueryRowContext(ctx,
		`INSERT INTO stock_sync_failures (id, redemption_id, product_id, user_id, quantity, synced, attempts, last_error, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, false, 1, $6, now(), now())
		 RETURNING created_on, updated_on`,
		f.ID, f.RedemptionID, f.ProductID, f.UserID, f.Quantity, f.LastError,
	).Scan(&f.CreatedOn, &f.UpdatedOn)
}

func (r *stockSyncRepository) ListUnsynced(ctx context.Context, limit int32) ([]domain.StockSyncFailure, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, redemption_id, product_id, user_id, quantity, synced, attempts, COALESCE(last_error, ''), created_on, updated_on
		 FROM stock_sync_failures WHERE synced = false ORDER BY created_on ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []domain.StockSyncFailure
	for rows.Next() {
		var f domain.StockSyncFailure
		if err := rows.Scan(&f.ID, &f.RedemptionID, &f.ProductID, &f.UserID, &f.Quantity, &f.Synced, &f.Attempts, &f.LastError, &f.CreatedOn, &f.UpdatedOn); err != nil {
			return nil, err
		}
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

func (r *stockSyncRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stock_sync_failures SET synced = true, updated_on = now() WHERE id = $1`, id)
	return err
}

func (r *stockSyncRepository) MarkAttempt(ctx context.Context, id, lastError string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stock_sync_failures SET attempts = attempts + 1, last_error = $2, updated_on = now() WHERE id = $1`, id, lastError)
	return err
}
