package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sahay-inc/sahay/internal/domain/analytics"
	"github.com/sahay-inc/sahay/internal/domain/dashboard"
	"github.com/sahay-inc/sahay/internal/infrastructure/persistence/models"
)

func newViewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.AggregatedEventModel{},
		&models.MVRefreshLogModel{},
	))
	return gdb
}

func seedAggregateCell(t *testing.T, gdb *gorm.DB, eventType, geoCell string, count int64) {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Hour)
	row := models.AggregatedEventModel{
		EventType:   eventType,
		Category:    "emergency",
		TimeBucket:  now,
		GeoCell:     geoCell,
		AgeBucket:   "19-35",
		Gender:      "female",
		Count:       count,
		FirstSeen:   now,
		LastUpdated: now,
	}
	require.NoError(t, gdb.Create(&row).Error)
}

func TestDashboardRepository_RefreshAppliesConfiguredFloor(t *testing.T) {
	gdb := newViewTestDB(t)

	// Three cells straddle the floors: one above the configured value,
	// one between the default and the configured value, one below both.
	seedAggregateCell(t, gdb, "triage_completed", "pincode_110xxx", 9)
	seedAggregateCell(t, gdb, "triage_completed", "pincode_452xxx", 6)
	seedAggregateCell(t, gdb, "triage_completed", "pincode_689xxx", 3)

	repo := NewDashboardRepository(gdb, 8)
	results := repo.RefreshAll(context.Background())
	require.Len(t, results, 4)
	for _, result := range results {
		require.NoError(t, result.Err, "refresh of %s", result.View)
	}

	rows, err := repo.DailyTriageCounts(context.Background(), dashboard.TriageCountsFilter{})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "pincode_110xxx", rows[0].GeoCell)
	assert.Equal(t, int64(9), rows[0].TotalCount)
}

func TestDashboardRepository_RefreshKeepsDefaultFloorCells(t *testing.T) {
	gdb := newViewTestDB(t)

	seedAggregateCell(t, gdb, "triage_completed", "pincode_110xxx", 6)
	seedAggregateCell(t, gdb, "triage_completed", "pincode_452xxx", 4)

	repo := NewDashboardRepository(gdb, analytics.DefaultKThreshold)
	for _, result := range repo.RefreshAll(context.Background()) {
		require.NoError(t, result.Err, "refresh of %s", result.View)
	}

	rows, err := repo.DailyTriageCounts(context.Background(), dashboard.TriageCountsFilter{})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "pincode_110xxx", rows[0].GeoCell)
}

func TestNewDashboardRepository_NeverLowersFloorBelowDefault(t *testing.T) {
	repo := NewDashboardRepository(nil, 2)
	assert.Equal(t, int64(analytics.DefaultKThreshold), repo.kThreshold)
}

func TestViewDefinitions_FloorIsParameterized(t *testing.T) {
	for _, def := range viewDefinitions {
		t.Run(def.name.String(), func(t *testing.T) {
			assert.Contains(t, def.selectSQL, "HAVING SUM(count) >= ?")
			assert.NotContains(t, def.selectSQL, fmt.Sprintf(">= %d", analytics.DefaultKThreshold))
		})
	}
}
