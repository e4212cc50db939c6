package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"points-backend/internal/domain"
)

type codeEntry struct {
	code      string
	expiresAt time.Time
}

type verificationStore struct {
	mu       sync.Mutex
	codes    map[string]codeEntry
	ttl      time.Duration
	testCode string
	now      func() time.Time
}

// NewVerificationService creates the in-memory code store. testCode, when
// non-empty, is accepted for any handle (dev environments only).
func NewVerificationService(ttl time.Duration, testCode string) VerificationService {
	return &verificationStore{
		codes:    make(map[string]codeEntry),
		ttl:      ttl,
		testCode: testCode,
		now:      time.Now,
	}
}

// Issue generates a fresh 6-digit code for handle, replacing any prior
// unconsumed code.
func (s *verificationStore) Issue(handle string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}

	s.mu.Lock()
	s.codes[handle] = codeEntry{code: code, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return code, nil
}

// Consume validates candidate against the stored code for handle. A match
// purges the entry, so a code verifies at most once. A mismatch keeps the
// entry so a corrected retry can still succeed. An expired entry is purged.
func (s *verificationStore) Consume(handle, candidate string) error {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return domain.ErrMissingCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.testCode != "" && candidate == s.testCode {
		return nil
	}

	entry, ok := s.codes[handle]
	if !ok {
		return domain.ErrCodeNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.codes, handle)
		return domain.ErrCodeExpired
	}
	if entry.code != candidate {
		return domain.ErrCodeMismatch
	}

	delete(s.codes, handle)
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
