package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"points-backend/internal/domain"
	"points-backend/internal/repository"
)

type redemptionRepository struct {
	db *sql.DB
}

func NewRedemptionRepository(db *sql.DB) repository.RedemptionRepository {
	return &redemptionRepository{db: db}
}

const redemptionColumns = `id, user_id, product_id, quantity, points, status, COALESCE(coupon_code, ''), COALESCE(fail_reason, ''), created_on, updated_on`

func (r *redemptionRepository) Create(ctx context.Context, rec *domain.RedemptionRecord) error {
	if rec.Status == "" {
		rec.Status = domain.RedemptionStatusPending
	}
	return r.db.QueryRowContext(ctx,
		`INSERT INTO exchange_records (id, user_id, product_id, quantity, points, status, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		 RETURNING created_on, updated_on`,
		rec.ID, rec.UserID, rec.ProductID, rec.Quantity, rec.Points, rec.Status,
	).Scan(&rec.CreatedOn, &rec.UpdatedOn)
}

func (r *redemptionRepository) GetByID(ctx context.Context, id string) (*domain.RedemptionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+redemptionColumns+` FROM exchange_records WHERE id = $1`, id)
	var rec domain.RedemptionRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.ProductID, &rec.Quantity, &rec.Points, &rec.Status, &rec.CouponCode, &rec.FailReason, &rec.CreatedOn, &rec.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("redemption %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *redemptionRepository) MarkCompleted(ctx context.Context, id, couponCode string, points int32) error {
	return r.transition(ctx,
		`UPDATE exchange_records
		 SET status = $2, coupon_code = $3, points = $4, updated_on = now()
		 WHERE id = $1 AND status = $5`,
		id, domain.RedemptionStatusCompleted, couponCode, points, domain.RedemptionStatusPending)
}

func (r *redemptionRepository) MarkFailed(ctx context.Context, id, reason string) error {
	return r.transition(ctx,
		`UPDATE exchange_records
		 SET status = $2, fail_reason = $3, updated_on = now()
		 WHERE id = $1 AND status = $4`,
		id, domain.RedemptionStatusFailed, reason, domain.RedemptionStatusPending)
}

// transition guards the single PENDING -> terminal state change: updating a
// record that already reached a terminal status affects zero rows.
func (r *redemptionRepository) transition(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("redemption %v is not pending", args[0])
	}
	return nil
}

func (r *redemptionRepository) CountMonthlyCompleted(ctx context.Context, userID, productID string, at time.Time) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM exchange_records
		 WHERE user_id = $1 AND product_id = $2 AND status = $3
		   AND date_trunc('month', created_on) = date_trunc('month', $4::timestamptz)`,
		userID, productID, domain.RedemptionStatusCompleted, at).Scan(&count)
	return count, err
}

func (r *redemptionRepository) List(ctx context.Context, userID, productID string, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RedemptionRecord, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	where := ` WHERE 1=1`
	var args []any
	if userID != "" {
		args = append(args, userID)
		where += fmt.Sprintf(" AND user_id = $%d", len(args))
	}
	if productID != "" {
		args = append(args, productID)
		where += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM exchange_records`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + redemptionColumns + ` FROM exchange_records` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.RedemptionRecord
	for rows.Next() {
		var rec domain.RedemptionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ProductID, &rec.Quantity, &rec.Points, &rec.Status, &rec.CouponCode, &rec.FailReason, &rec.CreatedOn, &rec.UpdatedOn); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, count, rows.Err()
}
