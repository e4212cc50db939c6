package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"points-backend/internal/domain"
	"points-backend/internal/logger"
	"points-backend/internal/repository"

	"github.com/google/uuid"
)

type redemptionService struct {
	ledgerRepo     repository.LedgerRepository
	redemptionRepo repository.RedemptionRepository
	stockSyncRepo  repository.StockSyncRepository
	verification   VerificationService
	products       ProductClient
	identity       IdentityClient
	sender         CodeSender
	codeTTL        time.Duration
	channel        string // "phone" or "email"
	userLocks      *keyedMutex
}

func NewRedemptionService(
	ledgerRepo repository.LedgerRepository,
	redemptionRepo repository.RedemptionRepository,
	stockSyncRepo repository.StockSyncRepository,
	verification VerificationService,
	products ProductClient,
	identity IdentityClient,
	sender CodeSender,
	codeTTL time.Duration,
	channel string,
) RedemptionService {
	return &redemptionService{
		ledgerRepo:     ledgerRepo,
		redemptionRepo: redemptionRepo,
		stockSyncRepo:  stockSyncRepo,
		verification:   verification,
		products:       products,
		identity:       identity,
		sender:         sender,
		codeTTL:        codeTTL,
		channel:        channel,
		userLocks:      newKeyedMutex(),
	}
}

// Redeem runs one redemption attempt. The ledger debit is the commit point:
// every failure before it leaves no mutation beyond the FAILED audit record,
// and nothing after it reverses the charge.
func (s *redemptionService) Redeem(ctx context.Context, userID, productID string, quantity int32, code string) (*domain.RedemptionRecord, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(code) == "" {
		return nil, domain.ErrMissingCode
	}

	rec := &domain.RedemptionRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    domain.RedemptionStatusPending,
	}
	if err := s.redemptionRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create redemption record: %w", err)
	}

	user, err := s.identity.GetUserInfo(ctx, userID)
	if err != nil {
		s.fail(ctx, rec, err)
		return nil, err
	}
	handle := s.contactHandle(user)
	if handle == "" {
		s.fail(ctx, rec, domain.ErrNoContactHandle)
		return nil, domain.ErrNoContactHandle
	}

	// Single-use consumption. A mismatch keeps the stored code alive so the
	// user can correct a typo without requesting a new code.
	if err := s.verification.Consume(handle, code); err != nil {
		logger.Warn("verification failed for redemption",
			"user_id", userID, "redemption_id", rec.ID, "error", err)
		s.fail(ctx, rec, err)
		return nil, err
	}

	product, err := s.products.Fetch(ctx, productID)
	if err != nil {
		s.fail(ctx, rec, err)
		return nil, err
	}

	if err := s.complete(ctx, rec, product); err != nil {
		return nil, err
	}

	// Post-commit, outside the user lock: best-effort remote decrement. A
	// failure here is recorded for the reconciliation sweep, never surfaced.
	s.decrementStock(ctx, rec)

	logger.Info("redemption completed",
		"user_id", userID, "product", product.Name, "quantity", quantity,
		"points", rec.Points, "coupon_code", rec.CouponCode)
	return rec, nil
}

// complete holds the per-user lock across quota check, stock check, debit and
// record commit, so two concurrent attempts cannot jointly overshoot the
// monthly limit or the balance.
func (s *redemptionService) complete(ctx context.Context, rec *domain.RedemptionRecord, product *domain.ProductSnapshot) error {
	s.userLocks.Lock(rec.UserID)
	defer s.userLocks.Unlock(rec.UserID)

	if product.MonthlyLimit > 0 {
		used, err := s.redemptionRepo.CountMonthlyCompleted(ctx, rec.UserID, rec.ProductID, time.Now())
		if err != nil {
			s.fail(ctx, rec, err)
			return err
		}
		if used+rec.Quantity > product.MonthlyLimit {
			remaining := product.MonthlyLimit - used
			if remaining < 0 {
				remaining = 0
			}
			qerr := &domain.QuotaExceededError{Used: used, Limit: product.MonthlyLimit, Remaining: remaining}
			s.fail(ctx, rec, qerr)
			return qerr
		}
	}

	if product.Stock < rec.Quantity {
		serr := &domain.InsufficientStockError{Stock: product.Stock, Required: rec.Quantity}
		s.fail(ctx, rec, serr)
		return serr
	}

	if product.Points <= 0 {
		s.fail(ctx, rec, domain.ErrMisconfiguredProduct)
		return domain.ErrMisconfiguredProduct
	}
	required := product.Points * rec.Quantity

	// Commit point.
	_, err := s.ledgerRepo.Debit(ctx, rec.UserID, required,
		fmt.Sprintf("Redeemed %s", product.Name),
		fmt.Sprintf("Redeemed %d x %s for %d points", rec.Quantity, product.Name, required),
		rec.ID, "redemption")
	if err != nil {
		s.fail(ctx, rec, err)
		return err
	}

	couponCode := generateCouponCode()
	if err := s.redemptionRepo.MarkCompleted(ctx, rec.ID, couponCode, required); err != nil {
		// The debit already landed; the user is charged. Surface the error
		// but do not touch the ledger.
		logger.Error("failed to mark redemption completed after debit",
			"redemption_id", rec.ID, "user_id", rec.UserID, "error", err)
		return fmt.Errorf("failed to record completed redemption: %w", err)
	}

	rec.Status = domain.RedemptionStatusCompleted
	rec.CouponCode = couponCode
	rec.Points = required
	return nil
}

func (s *redemptionService) decrementStock(ctx context.Context, rec *domain.RedemptionRecord) {
	err := s.products.DecrementStock(ctx, rec.ProductID, rec.Quantity, rec.UserID)
	if err == nil {
		return
	}

	logger.Warn("remote stock decrement failed after commit, queueing for reconciliation",
		"redemption_id", rec.ID, "product_id", rec.ProductID, "quantity", rec.Quantity, "error", err)

	failure := &domain.StockSyncFailure{
		RedemptionID: rec.ID,
		ProductID:    rec.ProductID,
		UserID:       rec.UserID,
		Quantity:     rec.Quantity,
		LastError:    err.Error(),
	}
	if err := s.stockSyncRepo.RecordFailure(ctx, failure); err != nil {
		logger.Error("failed to record stock sync failure",
			"redemption_id", rec.ID, "error", err)
	}
}

// fail writes the terminal FAILED status. The record write is best-effort:
// the caller's error is what the user sees either way.
func (s *redemptionService) fail(ctx context.Context, rec *domain.RedemptionRecord, cause error) {
	rec.Status = domain.RedemptionStatusFailed
	rec.FailReason = cause.Error()
	if err := s.redemptionRepo.MarkFailed(ctx, rec.ID, cause.Error()); err != nil {
		logger.Error("failed to mark redemption failed",
			"redemption_id", rec.ID, "error", err)
	}
}

func (s *redemptionService) SendVerificationCode(ctx context.Context, userID string) (string, error) {
	user, err := s.identity.GetUserInfo(ctx, userID)
	if err != nil {
		return "", err
	}
	handle := s.contactHandle(user)
	if handle == "" {
		return "", domain.ErrNoContactHandle
	}

	code, err := s.verification.Issue(handle)
	if err != nil {
		return "", err
	}
	if err := s.sender.SendCode(ctx, handle, code, s.codeTTL); err != nil {
		return "", fmt.Errorf("failed to deliver verification code: %w", err)
	}
	return code, nil
}

func (s *redemptionService) ListRedemptions(ctx context.Context, userID, productID string, status domain.RedemptionStatus, page, pageSize int32) ([]domain.RedemptionRecord, int32, error) {
	return s.redemptionRepo.List(ctx, userID, productID, status, page, pageSize)
}

func (s *redemptionService) contactHandle(user *domain.UserInfo) string {
	var handle string
	if s.channel == "email" {
		handle = user.Email
	} else {
		handle = user.Phone
	}
	return strings.TrimSpace(handle)
}

func generateCouponCode() string {
	return "CPN-" + strings.ToUpper(uuid.NewString())
}
