package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/audit"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

func TestListEntriesUseCase_Execute(t *testing.T) {
	t.Run("officers may filter by any actor", func(t *testing.T) {
		var gotFilter audit.ListFilter
		repo := &mockAuditRepository{
			ListFunc: func(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, int64, error) {
				gotFilter = filter
				return buildChain(t, 2), 2, nil
			},
		}

		uc := NewListEntriesUseCase(repo, logger.NewLogger())
		result, err := uc.Execute(context.Background(), ListEntriesQuery{
			CallerSID:       "user_officer",
			CallerIsOfficer: true,
			ActorID:         "user_abc123",
			Action:          "consent.grant",
		})

		require.NoError(t, err)
		assert.Equal(t, "user_abc123", gotFilter.ActorID)
		assert.Equal(t, "consent.grant", gotFilter.Action)
		assert.Equal(t, int64(2), result.Total)
		require.Len(t, result.Entries, 2)
		assert.Equal(t, uint64(1), result.Entries[0].Seq)
		assert.NotEmpty(t, result.Entries[0].EntryHash)
	})

	t.Run("citizens are pinned to their own entries", func(t *testing.T) {
		var gotFilter audit.ListFilter
		repo := &mockAuditRepository{
			ListFunc: func(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, int64, error) {
				gotFilter = filter
				return nil, 0, nil
			},
		}

		uc := NewListEntriesUseCase(repo, logger.NewLogger())
		_, err := uc.Execute(context.Background(), ListEntriesQuery{
			CallerSID: "user_abc123",
			ActorID:   "user_somebody_else",
		})

		require.NoError(t, err)
		assert.Equal(t, "user_abc123", gotFilter.ActorID)
	})

	t.Run("pagination defaults are applied", func(t *testing.T) {
		var gotFilter audit.ListFilter
		repo := &mockAuditRepository{
			ListFunc: func(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, int64, error) {
				gotFilter = filter
				return nil, 0, nil
			},
		}

		uc := NewListEntriesUseCase(repo, logger.NewLogger())
		_, err := uc.Execute(context.Background(), ListEntriesQuery{
			CallerSID: "user_abc123",
			PageSize:  10000,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, gotFilter.Page)
		assert.Equal(t, 20, gotFilter.PageSize)
	})

	t.Run("anonymous callers are refused", func(t *testing.T) {
		uc := NewListEntriesUseCase(&mockAuditRepository{}, logger.NewLogger())
		_, err := uc.Execute(context.Background(), ListEntriesQuery{})
		require.Error(t, err)
	})
}
