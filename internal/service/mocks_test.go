package service_test

import (
	"context"
	"time"

	"points-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) GetAccount(ctx context.Context, userID string) (*domain.PointsAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsAccount), args.Error(1)
}
func (m *MockLedgerRepo) Credit(ctx context.Context, userID string, amount int32, description, details string) (*domain.PointsRecord, error) {
	args := m.Called(ctx, userID, amount, description, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsRecord), args.Error(1)
}
func (m *MockLedgerRepo) Debit(ctx context.Context, userID string, amount int32, description, details, relatedID, relatedKind string) (*domain.PointsRecord, error) {
	args := m.Called(ctx, userID, amount, description, details, relatedID, relatedKind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsRecord), args.Error(1)
}
func (m *MockLedgerRepo) ListRecords(ctx context.Context, userID string, kind domain.RecordKind, since time.Time, limit int32) ([]domain.PointsRecord, error) {
	args := m.Called(ctx, userID, kind, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PointsRecord), args.Error(1)
}

// MockRedemptionRepo
type MockRedemptionRepo struct {
	mock.Mock
}

func (m *MockRedemptionRepo) Create(ctx context.Context, rec *domain.RedemptionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockRedemptionRepo) GetByID(ctx context.Context, id string) (*domain.RedemptionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RedemptionRecord), args.Error(1)
}
func (m *MockRedemptionRepo) MarkCompleted(ctx context.Context, id, couponCode string, points int32) error {
	args := m.Called(ctx, id, couponCode, points)
	return args.Error(0)
}
func (m *MockRedemptionRepo) MarkFailed(ctx context.Context, id, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}
func (m *MockRedemptionRepo) CountMonthlyCompleted(ctx context.Context, userID, productID string, at time.Time) (int32, error) {
	args := m.Called(ctx, userID, productID, at)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockRedemptionRepo) List(ctx context.Context, userID, productID string, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RedemptionRecord, int32, error) {
	args := m.Called(ctx, userID, productID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int32), args.Error(2)
	}
	return args.Get(0).([]domain.RedemptionRecord), args.Get(1).(int32), args.Error(2)
}

// MockStockSyncRepo
type MockStockSyncRepo struct {
	mock.Mock
}

func (m *MockStockSyncRepo) RecordFailure(ctx context.Context, f *domain.StockSyncFailure) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *MockStockSyncRepo) ListUnsynced(ctx context.Context, limit int32) ([]domain.StockSyncFailure, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockSyncFailure), args.Error(1)
}
func (m *MockStockSyncRepo) MarkSynced(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockStockSyncRepo) MarkAttempt(ctx context.Context, id, lastError string) error {
	args := m.Called(ctx, id, lastError)
	return args.Error(0)
}

// MockProductClient
type MockProductClient struct {
	mock.Mock
}

func (m *MockProductClient) Fetch(ctx context.Context, productID string) (*domain.ProductSnapshot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductSnapshot), args.Error(1)
}
func (m *MockProductClient) DecrementStock(ctx context.Context, productID string, quantity int32, userID string) error {
	args := m.Called(ctx, productID, quantity, userID)
	return args.Error(0)
}

// MockIdentityClient
type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) GetUserInfo(ctx context.Context, userID string) (*domain.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserInfo), args.Error(1)
}

// MockVerification
type MockVerification struct {
	mock.Mock
}

func (m *MockVerification) Issue(handle string) (string, error) {
	args := m.Called(handle)
	return args.String(0), args.Error(1)
}
func (m *MockVerification) Consume(handle, candidate string) error {
	args := m.Called(handle, candidate)
	return args.Error(0)
}

// MockCodeSender
type MockCodeSender struct {
	mock.Mock
}

func (m *MockCodeSender) SendCode(ctx context.Context, handle, code string, ttl time.Duration) error {
	args := m.Called(ctx, handle, code, ttl)
	return args.Error(0)
}
