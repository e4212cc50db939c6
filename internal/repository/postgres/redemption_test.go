package postgres_test

import (
	"context"
	"testing"
	"time"

	"points-backend/internal/domain"
	"points-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedemptionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRedemptionRepository(db)
	ctx := context.Background()

	t.Run("Defaults To Pending", func(t *testing.T) {
		now := time.Now()
		rec := &domain.RedemptionRecord{ID: "rdm-1", UserID: "u1", ProductID: "p1", Quantity: 2}

		mock.ExpectQuery("INSERT INTO exchange_records").
			WithArgs("rdm-1", "u1", "p1", int32(2), int32(0), "PENDING").
			WillReturnRows(sqlmock.NewRows([]string{"created_on", "updated_on"}).AddRow(now, now))

		err := repo.Create(ctx, rec)
		require.NoError(t, err)
		assert.Equal(t, domain.RedemptionStatusPending, rec.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedemptionRepository_MarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRedemptionRepository(db)
	ctx := context.Background()

	t.Run("Pending Record Transitions", func(t *testing.T) {
		mock.ExpectExec("UPDATE exchange_records").
			WithArgs("rdm-1", "COMPLETED", "CPN-ABC", int32(200), "PENDING").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkCompleted(ctx, "rdm-1", "CPN-ABC", 200))
	})

	t.Run("Terminal Record Refuses Second Transition", func(t *testing.T) {
		mock.ExpectExec("UPDATE exchange_records").
			WithArgs("rdm-1", "COMPLETED", "CPN-ABC", int32(200), "PENDING").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkCompleted(ctx, "rdm-1", "CPN-ABC", 200)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not pending")
	})
}

func TestRedemptionRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRedemptionRepository(db)
	ctx := context.Background()

	t.Run("Pending Record Transitions", func(t *testing.T) {
		mock.ExpectExec("UPDATE exchange_records").
			WithArgs("rdm-1", "FAILED", "insufficient stock", "PENDING").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkFailed(ctx, "rdm-1", "insufficient stock"))
	})
}

func TestRedemptionRepository_CountMonthlyCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRedemptionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		at := time.Now()
		mock.ExpectQuery(`SELECT count\(\*\) FROM exchange_records`).
			WithArgs("u1", "p1", "COMPLETED", at).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountMonthlyCompleted(ctx, "u1", "p1", at)
		require.NoError(t, err)
		assert.Equal(t, int32(2), count)
	})
}

func TestRedemptionRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRedemptionRepository(db)
	ctx := context.Background()

	columns := []string{"id", "user_id", "product_id", "quantity", "points", "status", "coupon_code", "fail_reason", "created_on", "updated_on"}

	t.Run("Filtered By User And Status", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT count\(\*\) FROM exchange_records`).
			WithArgs("u1", "COMPLETED").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT id, user_id, product_id").
			WithArgs("u1", "COMPLETED", int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("rdm-1", "u1", "p1", 2, 200, "COMPLETED", "CPN-ABC", "", now, now))

		records, total, err := repo.List(ctx, "u1", "", domain.RedemptionStatusCompleted, 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int32(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, "CPN-ABC", records[0].CouponCode)
	})

	t.Run("Clamps Page And Page Size", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM exchange_records`).
			WithArgs("u1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT id, user_id, product_id").
			WithArgs("u1", int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows(columns))

		records, total, err := repo.List(ctx, "u1", "", "", 0, 500)
		require.NoError(t, err)
		assert.Equal(t, int32(0), total)
		assert.Empty(t, records)
	})
}
