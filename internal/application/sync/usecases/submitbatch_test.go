package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/syncevent"
	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/domain/wellness"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

const (
	callerID  = uint(3)
	callerSID = "user_abc123"

	eventA = "8f14e45f-ceea-4673-9a7b-0d7a83d7a001"
	eventB = "8f14e45f-ceea-4673-9a7b-0d7a83d7a002"
	eventC = "8f14e45f-ceea-4673-9a7b-0d7a83d7a003"
)

func newSubmitBatchUseCase(
	events syncevent.Repository,
	profiles *mockProfileRepository,
	well *mockWellnessRepository,
	auditor *mockAuditor,
) *SubmitBatchUseCase {
	return NewSubmitBatchUseCase(events, profiles, well, &mockTxManager{}, auditor, logger.NewLogger())
}

func vitalsItem(eventID string) SyncItem {
	return SyncItem{
		EventID:    eventID,
		DeviceID:   "device-1",
		UserID:     callerSID,
		EntityType: "vitals",
		Operation:  "CREATE",
		ClientTime: "2025-08-20T10:00:00Z",
		Payload: map[string]any{
			"vital_type":  "heart_rate",
			"value":       72.0,
			"unit":        "bpm",
			"measured_at": "2025-08-20T09:58:00Z",
		},
	}
}

func submit(t *testing.T, uc *SubmitBatchUseCase, items ...SyncItem) *SubmitBatchResult {
	t.Helper()
	result, err := uc.Execute(context.Background(), SubmitBatchCommand{
		CallerID:  callerID,
		CallerSID: callerSID,
		IP:        "10.0.0.1",
		Device:    "android-13",
		Items:     items,
	})
	require.NoError(t, err)
	return result
}

func TestSubmitBatchUseCase_AcceptsWellnessCreates(t *testing.T) {
	log := newMemEventLog()
	auditor := &mockAuditor{}
	uc := newSubmitBatchUseCase(log, &mockProfileRepository{}, &mockWellnessRepository{}, auditor)

	moodItem := SyncItem{
		EventID:    eventB,
		DeviceID:   "device-1",
		UserID:     callerSID,
		EntityType: "mood",
		Operation:  "CREATE",
		ClientTime: "2025-08-20T10:01:00Z",
		Payload: map[string]any{
			"mood_scale": 4,
			"notes":      "slept well",
			"logged_at":  "2025-08-20T10:00:00Z",
		},
	}
	waterItem := SyncItem{
		EventID:    eventC,
		DeviceID:   "device-1",
		UserID:     callerSID,
		EntityType: "water",
		Operation:  "CREATE",
		ClientTime: "2025-08-20T10:02:00Z",
		Payload: map[string]any{
			"amount_ml": 250,
			"logged_at": "2025-08-20T10:01:30Z",
		},
	}

	result := submit(t, uc, vitalsItem(eventA), moodItem, waterItem)

	assert.Equal(t, 3, result.Accepted)
	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, "accepted", result.Outcomes[0].Outcome)
	assert.Equal(t, "11", result.Outcomes[0].ServerID)
	assert.Equal(t, "12", result.Outcomes[1].ServerID)
	assert.Equal(t, "13", result.Outcomes[2].ServerID)

	// Every accepted item is in the log and audited.
	assert.Len(t, log.events, 3)
	assert.Len(t, auditor.Records, 3)
	assert.Equal(t, "sync.apply", auditor.Records[0].Action)
	assert.Equal(t, eventA, auditor.Records[0].EntityID)
}

func TestSubmitBatchUseCase_ReplayAnswersDuplicate(t *testing.T) {
	log := newMemEventLog()
	well := &mockWellnessRepository{}
	auditor := &mockAuditor{}
	uc := newSubmitBatchUseCase(log, &mockProfileRepository{}, well, auditor)

	first := submit(t, uc, vitalsItem(eventA))
	require.Equal(t, 1, first.Accepted)

	well.CreateVitalsFunc = func(ctx context.Context, record *wellness.VitalsRecord) error {
		t.Error("replay must not write a second wellness row")
		return nil
	}

	second := submit(t, uc, vitalsItem(eventA))
	assert.Equal(t, 0, second.Accepted)
	assert.Equal(t, 1, second.Duplicate)
	assert.Equal(t, "duplicate", second.Outcomes[0].Outcome)
	// The replay answers with the originally assigned row.
	assert.Equal(t, "11", second.Outcomes[0].ServerID)
	// No second audit entry for a replay.
	assert.Len(t, auditor.Records, 1)
}

func TestSubmitBatchUseCase_ProfileLastWriteWins(t *testing.T) {
	baseTime := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	storedEventID := "50000000-0000-4000-8000-000000000000"

	newProfile := func(t *testing.T) *user.Profile {
		profile, err := user.ReconstructProfile(
			1, callerID, "old-alias", "1990-01-01", "F", "110001",
			baseTime, storedEventID, baseTime,
		)
		require.NoError(t, err)
		return profile
	}

	profileItem := func(eventID, operation, clientTime string) SyncItem {
		return SyncItem{
			EventID:    eventID,
			DeviceID:   "device-1",
			UserID:     callerSID,
			EntityType: "profile",
			Operation:  operation,
			ClientTime: clientTime,
			Payload: map[string]any{
				"name_alias": "new-alias",
				"dob":        "1990-01-01",
				"sex":        "F",
				"pincode":    "110002",
			},
		}
	}

	tests := []struct {
		name        string
		eventID     string
		operation   string
		clientTime  string
		wantOutcome string
	}{
		{
			name:        "newer client time wins",
			eventID:     eventA,
			operation:   "UPDATE",
			clientTime:  "2025-08-20T10:05:00Z",
			wantOutcome: "accepted",
		},
		{
			name:        "create applies like update",
			eventID:     eventA,
			operation:   "CREATE",
			clientTime:  "2025-08-20T10:05:00Z",
			wantOutcome: "accepted",
		},
		{
			name:        "older client time is stale",
			eventID:     eventA,
			operation:   "UPDATE",
			clientTime:  "2025-08-20T09:55:00Z",
			wantOutcome: "rejected:stale",
		},
		{
			name:        "older create is stale too",
			eventID:     eventA,
			operation:   "CREATE",
			clientTime:  "2025-08-20T09:55:00Z",
			wantOutcome: "rejected:stale",
		},
		{
			name:        "equal time with larger event id wins",
			eventID:     "60000000-0000-4000-8000-000000000000",
			operation:   "UPDATE",
			clientTime:  "2025-08-20T10:00:00Z",
			wantOutcome: "accepted",
		},
		{
			name:        "equal time with smaller event id is stale",
			eventID:     "40000000-0000-4000-8000-000000000000",
			operation:   "UPDATE",
			clientTime:  "2025-08-20T10:00:00Z",
			wantOutcome: "rejected:stale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := newProfile(t)
			var updated bool
			profiles := &mockProfileRepository{
				GetByUserIDFunc: func(ctx context.Context, userID uint) (*user.Profile, error) {
					return profile, nil
				},
				UpdateFunc: func(ctx context.Context, p *user.Profile) error {
					updated = true
					return nil
				},
			}
			log := newMemEventLog()
			uc := newSubmitBatchUseCase(log, profiles, &mockWellnessRepository{}, &mockAuditor{})

			result := submit(t, uc, profileItem(tt.eventID, tt.operation, tt.clientTime))

			assert.Equal(t, tt.wantOutcome, result.Outcomes[0].Outcome)
			assert.Equal(t, tt.wantOutcome == "accepted", updated)
			// Stale writes still land in the log for replay stability.
			assert.Len(t, log.events, 1)

			if tt.wantOutcome == "accepted" {
				assert.Equal(t, "new-alias", profile.NameAlias())
				assert.Equal(t, "110002", profile.Pincode())
			} else {
				assert.Equal(t, "old-alias", profile.NameAlias())
			}
		})
	}
}

func TestSubmitBatchUseCase_ProfileDeleteBlanksFields(t *testing.T) {
	baseTime := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	profile, err := user.ReconstructProfile(
		1, callerID, "old-alias", "1990-01-01", "F", "110001",
		baseTime, "50000000-0000-4000-8000-000000000000", baseTime,
	)
	require.NoError(t, err)

	var updated bool
	profiles := &mockProfileRepository{
		GetByUserIDFunc: func(ctx context.Context, userID uint) (*user.Profile, error) {
			return profile, nil
		},
		UpdateFunc: func(ctx context.Context, p *user.Profile) error {
			updated = true
			return nil
		},
	}
	uc := newSubmitBatchUseCase(newMemEventLog(), profiles, &mockWellnessRepository{}, &mockAuditor{})

	deleteItem := SyncItem{
		EventID:    eventA,
		DeviceID:   "device-1",
		UserID:     callerSID,
		EntityType: "profile",
		Operation:  "DELETE",
		ClientTime: "2025-08-20T10:05:00Z",
		Payload:    map[string]any{},
	}

	result := submit(t, uc, deleteItem)

	assert.Equal(t, "accepted", result.Outcomes[0].Outcome)
	assert.True(t, updated)
	// The row survives with its fields blanked; LWW state keeps moving so
	// an older queued write cannot resurrect the cleared values.
	assert.Empty(t, profile.NameAlias())
	assert.Empty(t, profile.DOB())
	assert.Empty(t, profile.Sex())
	assert.Empty(t, profile.Pincode())

	stale := submit(t, uc, SyncItem{
		EventID:    eventB,
		DeviceID:   "device-1",
		UserID:     callerSID,
		EntityType: "profile",
		Operation:  "UPDATE",
		ClientTime: "2025-08-20T10:04:00Z",
		Payload:    map[string]any{"name_alias": "resurrected"},
	})

	assert.Equal(t, "rejected:stale", stale.Outcomes[0].Outcome)
	assert.Empty(t, profile.NameAlias())
}

func TestSubmitBatchUseCase_Rejections(t *testing.T) {
	makeItem := func(mutate func(*SyncItem)) SyncItem {
		item := vitalsItem(eventA)
		mutate(&item)
		return item
	}

	tests := []struct {
		name        string
		item        SyncItem
		wantOutcome string
		recorded    bool
	}{
		{
			name:        "envelope for another user",
			item:        makeItem(func(i *SyncItem) { i.UserID = "user_intruder" }),
			wantOutcome: "rejected:user_mismatch",
			recorded:    true,
		},
		{
			name:        "unknown entity type",
			item:        makeItem(func(i *SyncItem) { i.EntityType = "steps" }),
			wantOutcome: "rejected:unsupported_entity",
			recorded:    false,
		},
		{
			name:        "unknown operation",
			item:        makeItem(func(i *SyncItem) { i.Operation = "UPSERT" }),
			wantOutcome: "rejected:unsupported_operation",
			recorded:    false,
		},
		{
			name:        "update on an append-only log",
			item:        makeItem(func(i *SyncItem) { i.Operation = "UPDATE" }),
			wantOutcome: "rejected:append_only",
			recorded:    true,
		},
		{
			name:        "delete on an append-only log",
			item:        makeItem(func(i *SyncItem) { i.Operation = "DELETE" }),
			wantOutcome: "rejected:append_only",
			recorded:    true,
		},
		{
			name:        "unparseable client time",
			item:        makeItem(func(i *SyncItem) { i.ClientTime = "yesterday" }),
			wantOutcome: "rejected:invalid_payload",
			recorded:    false,
		},
		{
			name:        "event id is not a uuid",
			item:        makeItem(func(i *SyncItem) { i.EventID = "not-a-uuid" }),
			wantOutcome: "rejected:invalid_payload",
			recorded:    false,
		},
		{
			name: "mood scale out of range",
			item: SyncItem{
				EventID:    eventA,
				DeviceID:   "device-1",
				UserID:     callerSID,
				EntityType: "mood",
				Operation:  "CREATE",
				ClientTime: "2025-08-20T10:00:00Z",
				Payload:    map[string]any{"mood_scale": 9, "logged_at": "2025-08-20T10:00:00Z"},
			},
			wantOutcome: "rejected:invalid_payload",
			recorded:    true,
		},
		{
			name:        "vitals payload missing the value",
			item:        makeItem(func(i *SyncItem) { delete(i.Payload, "value") }),
			wantOutcome: "rejected:invalid_payload",
			recorded:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newMemEventLog()
			auditor := &mockAuditor{}
			uc := newSubmitBatchUseCase(log, &mockProfileRepository{}, &mockWellnessRepository{}, auditor)

			result := submit(t, uc, tt.item)

			assert.Equal(t, tt.wantOutcome, result.Outcomes[0].Outcome)
			assert.Equal(t, 1, result.Rejected)
			if tt.recorded {
				assert.Len(t, log.events, 1, "well-formed envelopes land in the log")
			} else {
				assert.Empty(t, log.events, "malformed envelopes are answered but not recorded")
			}
			assert.Empty(t, auditor.Records, "rejections are not audited")
		})
	}
}

func TestSubmitBatchUseCase_BatchLimits(t *testing.T) {
	uc := newSubmitBatchUseCase(newMemEventLog(), &mockProfileRepository{}, &mockWellnessRepository{}, &mockAuditor{})

	t.Run("empty batch", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), SubmitBatchCommand{
			CallerID: callerID, CallerSID: callerSID,
		})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("batch over the cap", func(t *testing.T) {
		items := make([]SyncItem, maxBatchSize+1)
		for i := range items {
			items[i] = vitalsItem(fmt.Sprintf("8f14e45f-ceea-4673-9a7b-%012d", i))
		}
		_, err := uc.Execute(context.Background(), SubmitBatchCommand{
			CallerID: callerID, CallerSID: callerSID, Items: items,
		})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("anonymous caller", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), SubmitBatchCommand{
			Items: []SyncItem{vitalsItem(eventA)},
		})
		require.Error(t, err)
	})
}

// racingLog simulates two devices hitting the unique key in the same window:
// the duplicate check misses, the insert conflicts.
type racingLog struct {
	*memEventLog
	firstLookup bool
}

func (r *racingLog) GetByEventID(ctx context.Context, eventID string) (*syncevent.Event, error) {
	if !r.firstLookup {
		r.firstLookup = true
		return nil, nil
	}
	return r.memEventLog.GetByEventID(ctx, eventID)
}

func TestSubmitBatchUseCase_InsertRaceAnswersDuplicate(t *testing.T) {
	log := newMemEventLog()

	// The other device's envelope is already committed.
	seed := vitalsItem(eventA)
	clientTime, err := time.Parse(time.RFC3339, seed.ClientTime)
	require.NoError(t, err)
	winner, err := syncevent.NewEvent(seed.EventID, "device-2", callerID, syncevent.EntityVitals, syncevent.OpCreate, clientTime, seed.Payload)
	require.NoError(t, err)
	require.NoError(t, winner.Resolve(syncevent.OutcomeAccepted, "42"))
	require.NoError(t, log.Create(context.Background(), winner))

	uc := newSubmitBatchUseCase(&racingLog{memEventLog: log}, &mockProfileRepository{}, &mockWellnessRepository{}, &mockAuditor{})
	result := submit(t, uc, vitalsItem(eventA))

	assert.Equal(t, 1, result.Duplicate)
	assert.Equal(t, "duplicate", result.Outcomes[0].Outcome)
	assert.Equal(t, "42", result.Outcomes[0].ServerID)
}

func TestSubmitBatchUseCase_TransientFailureIsUnrecorded(t *testing.T) {
	log := newMemEventLog()
	well := &mockWellnessRepository{
		CreateVitalsFunc: func(ctx context.Context, record *wellness.VitalsRecord) error {
			return fmt.Errorf("connection reset")
		},
	}

	uc := newSubmitBatchUseCase(log, &mockProfileRepository{}, well, &mockAuditor{})
	result := submit(t, uc, vitalsItem(eventA))

	assert.Equal(t, "rejected:transient", result.Outcomes[0].Outcome)
	assert.Empty(t, log.events, "rolled-back items leave no log row")
}
