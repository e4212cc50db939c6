package service

import (
	"context"
	"time"

	"points-backend/internal/domain"
	"points-backend/internal/repository"
)

// recordPageLimit caps a single records query.
const recordPageLimit = 100

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID string) (int32, error) {
	acc, err := s.ledgerRepo.GetAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (s *ledgerService) Credit(ctx context.Context, userID string, amount int32, description, details string) (int32, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if details == "" {
		details = description
	}
	rec, err := s.ledgerRepo.Credit(ctx, userID, amount, description, details)
	if err != nil {
		return 0, err
	}
	return rec.Balance, nil
}

func (s *ledgerService) Debit(ctx context.Context, userID string, amount int32, description, details string) (int32, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	if details == "" {
		details = description
	}
	rec, err := s.ledgerRepo.Debit(ctx, userID, amount, description, details, "", "")
	if err != nil {
		return 0, err
	}
	return rec.Balance, nil
}

func (s *ledgerService) GetRecords(ctx context.Context, userID, typeFilter, timeRange string) ([]domain.PointsRecord, error) {
	return s.ledgerRepo.ListRecords(ctx, userID, convertTypeFilter(typeFilter), calculateStartTime(timeRange), recordPageLimit)
}

func convertTypeFilter(typeFilter string) domain.RecordKind {
	switch typeFilter {
	case "earned":
		return domain.RecordKindEarn
	case "spent":
		return domain.RecordKindSpend
	default:
		return ""
	}
}

func calculateStartTime(timeRange string) time.Time {
	now := time.Now()
	switch timeRange {
	case "30days":
		return now.AddDate(0, 0, -30)
	case "3months":
		return now.AddDate(0, -3, 0)
	case "12months":
		return now.AddDate(-1, 0, 0)
	case "2years":
		return now.AddDate(-2, 0, 0)
	default:
		return now.AddDate(-10, 0, 0)
	}
}
