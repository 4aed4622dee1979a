package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/consent"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const activeDocumentVersion = "2025-01"

type stubConsentRepo struct {
	current *consent.Record
	err     error
}

func (s *stubConsentRepo) Create(ctx context.Context, record *consent.Record) error { return nil }

func (s *stubConsentRepo) GetCurrent(ctx context.Context, userID uint, category consent.Category, scope consent.Scope, at time.Time) (*consent.Record, error) {
	return s.current, s.err
}

func (s *stubConsentRepo) ListCurrentByUser(ctx context.Context, userID uint) ([]*consent.Record, error) {
	return nil, nil
}

func (s *stubConsentRepo) ListHistoryByUser(ctx context.Context, userID uint, page, pageSize int) ([]*consent.Record, int64, error) {
	return nil, 0, nil
}

func (s *stubConsentRepo) DeleteByUser(ctx context.Context, userID uint) error { return nil }

func currentReceipt(t *testing.T, version string, granted bool) *consent.Record {
	t.Helper()
	record, err := consent.ReconstructRecord(
		1, "cns_test", 3, consent.CategoryAnalytics, consent.ScopeGovAggregated,
		version, granted, time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return record
}

func TestConsentChecker_IsGranted(t *testing.T) {
	tests := []struct {
		name    string
		current *consent.Record
		want    bool
	}{
		{
			name:    "no receipt means not granted",
			current: nil,
			want:    false,
		},
		{
			name:    "grant under the active document",
			current: currentReceipt(t, activeDocumentVersion, true),
			want:    true,
		},
		{
			name:    "grant under an older document is void",
			current: currentReceipt(t, "2024-06", true),
			want:    false,
		},
		{
			name:    "newest receipt is a revoke",
			current: currentReceipt(t, activeDocumentVersion, false),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewConsentChecker(&stubConsentRepo{current: tt.current}, activeDocumentVersion, logger.NewLogger())
			granted, err := checker.IsGranted(context.Background(), 3, consent.CategoryAnalytics, consent.ScopeGovAggregated)
			require.NoError(t, err)
			assert.Equal(t, tt.want, granted)
		})
	}

	t.Run("repository errors surface", func(t *testing.T) {
		checker := NewConsentChecker(&stubConsentRepo{err: fmt.Errorf("connection reset")}, activeDocumentVersion, logger.NewLogger())
		_, err := checker.IsGranted(context.Background(), 3, consent.CategoryAnalytics, consent.ScopeGovAggregated)
		assert.Error(t, err)
	})
}

func TestConsentChecker_Require(t *testing.T) {
	t.Run("absent grant is a consent missing error", func(t *testing.T) {
		checker := NewConsentChecker(&stubConsentRepo{}, activeDocumentVersion, logger.NewLogger())
		err := checker.Require(context.Background(), 3, consent.CategoryTracking, consent.ScopeASHA)
		assert.True(t, apperrors.IsConsentMissingError(err))
	})

	t.Run("present grant passes", func(t *testing.T) {
		checker := NewConsentChecker(&stubConsentRepo{current: currentReceipt(t, activeDocumentVersion, true)}, activeDocumentVersion, logger.NewLogger())
		err := checker.Require(context.Background(), 3, consent.CategoryAnalytics, consent.ScopeGovAggregated)
		assert.NoError(t, err)
	})
}
