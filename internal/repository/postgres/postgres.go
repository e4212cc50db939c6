package postgres

import (
	"database/sql"

	"points-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.LedgerRepository
	repository.RedemptionRepository
	repository.StockSyncRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		LedgerRepository:     NewLedgerRepository(db),
		RedemptionRepository: NewRedemptionRepository(db),
		StockSyncRepository:  NewStockSyncRepository(db),
	}
}
