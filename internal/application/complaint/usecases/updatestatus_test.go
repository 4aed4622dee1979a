package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

const officerID = uint(7)

func sealedText(t *testing.T, text string) []byte {
	t.Helper()
	sealed, err := fakeSealer{}.Seal([]byte(text))
	require.NoError(t, err)
	return sealed
}

// storedComplaint builds a persisted complaint in the given state. Resolved
// and closed states carry the resolution note the domain requires.
func storedComplaint(t *testing.T, submitterID *uint, status complaint.Status, level complaint.EscalationLevel) *complaint.Complaint {
	t.Helper()
	t0 := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	var note *string
	if status == complaint.StatusResolved || status == complaint.StatusClosed {
		resolved := "Replaced the cooler unit."
		note = &resolved
	}
	var closedAt *time.Time
	if status == complaint.StatusClosed {
		closed := t0.Add(48 * time.Hour)
		closedAt = &closed
	}

	grievance, err := complaint.ReconstructComplaint(
		1, "cmp_xK9mP2vL3nQ", submitterID,
		complaint.CategoryServiceQuality, sealedText(t, "Water cooler broken for weeks"),
		status, level, false,
		t0.Add(72*time.Hour), note, nil, nil, nil, nil, closedAt,
		2, t0, t0,
	)
	require.NoError(t, err)
	return grievance
}

// pendingAnchor builds a queued anchor record for complaint 1.
func pendingAnchor(t *testing.T) *anchor.Record {
	t.Helper()
	record, err := anchor.NewRecord(1,
		strings.Repeat("a", 64), strings.Repeat("b", 64), strings.Repeat("c", 64),
		time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, record.SetID(1))
	return record
}

// confirmedAnchor builds an anchor record whose create submission landed.
func confirmedAnchor(t *testing.T) *anchor.Record {
	t.Helper()
	record := pendingAnchor(t)
	require.NoError(t, record.MarkInFlight())
	require.NoError(t, record.MarkConfirmed("0x"+strings.Repeat("d", 64)))
	return record
}

type updateStatusFixture struct {
	complaints *mockComplaintRepository
	histories  *mockHistoryRepository
	anchors    *mockAnchorRepository
	auditor    *mockAuditor
	uc         *UpdateStatusUseCase
}

func newUpdateStatusFixture(t *testing.T, grievance *complaint.Complaint) *updateStatusFixture {
	t.Helper()
	f := &updateStatusFixture{
		complaints: &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				if sid == grievance.SID() {
					return grievance, nil
				}
				return nil, apperrors.NewNotFoundError("complaint not found")
			},
		},
		histories: &mockHistoryRepository{},
		anchors:   &mockAnchorRepository{},
		auditor:   &mockAuditor{},
	}
	f.uc = NewUpdateStatusUseCase(
		f.complaints, f.histories, f.anchors,
		sanitize.NewService(), &mockTxManager{}, f.auditor, logger.NewLogger(),
	)
	return f
}

func updateCommand(status, note string) UpdateStatusCommand {
	return UpdateStatusCommand{
		CallerID:     officerID,
		CallerSID:    "user_off7x9",
		ComplaintSID: "cmp_xK9mP2vL3nQ",
		Status:       status,
		Note:         note,
		IP:           "10.0.0.2",
		Device:       "officer-console",
	}
}

func TestUpdateStatusUseCase_StartReviewQueuesAnchorUpdate(t *testing.T) {
	grievance := storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict)
	f := newUpdateStatusFixture(t, grievance)
	record := confirmedAnchor(t)
	f.anchors.GetByComplaintIDFunc = func(ctx context.Context, complaintID uint) (*anchor.Record, error) {
		return record, nil
	}

	result, err := f.uc.Execute(context.Background(), updateCommand("under_review", ""))
	require.NoError(t, err)

	assert.Equal(t, "under_review", result.Status)
	assert.Equal(t, 3, result.Version)

	require.Len(t, f.complaints.Updated, 1)
	require.Len(t, f.histories.Created, 1)
	change := f.histories.Created[0]
	assert.Equal(t, complaint.StatusSubmitted, change.OldStatus())
	assert.Equal(t, complaint.StatusUnderReview, change.NewStatus())
	require.NotNil(t, change.ChangedByUserID())
	assert.Equal(t, officerID, *change.ChangedByUserID())
	assert.False(t, change.IsAutoEscalation())

	require.Len(t, f.anchors.Updated, 1)
	assert.Equal(t, anchor.StatusPending, record.Status())
	assert.Equal(t, anchor.OpUpdate, record.Operation())
	assert.Equal(t, uint64(2), record.StatusNonce())

	require.Len(t, f.auditor.Records, 1)
	rec := f.auditor.Records[0]
	assert.Equal(t, "complaint.status_change", rec.Action)
	assert.Equal(t, "complaint", rec.EntityType)
	assert.Equal(t, grievance.SID(), rec.EntityID)
	assert.Equal(t, "user_off7x9", rec.ActorID)
	assert.Equal(t, "submitted", rec.Payload["from"])
	assert.Equal(t, "under_review", rec.Payload["to"])
}

func TestUpdateStatusUseCase_ResolveRequiresNote(t *testing.T) {
	t.Run("missing note", func(t *testing.T) {
		grievance := storedComplaint(t, uintPtr(3), complaint.StatusInProgress, complaint.LevelDistrict)
		f := newUpdateStatusFixture(t, grievance)

		_, err := f.uc.Execute(context.Background(), updateCommand("resolved", "   "))
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err), "got %v", err)
		assert.Empty(t, f.complaints.Updated)
	})

	t.Run("note recorded with markup stripped", func(t *testing.T) {
		grievance := storedComplaint(t, uintPtr(3), complaint.StatusInProgress, complaint.LevelDistrict)
		f := newUpdateStatusFixture(t, grievance)

		result, err := f.uc.Execute(context.Background(), updateCommand("resolved", "Replaced the <b>cooler unit</b>."))
		require.NoError(t, err)

		assert.Equal(t, "resolved", result.Status)
		require.NotNil(t, result.ResolutionNote)
		assert.Equal(t, "Replaced the cooler unit.", *result.ResolutionNote)

		require.Len(t, f.histories.Created, 1)
		assert.Equal(t, "Replaced the cooler unit.", f.histories.Created[0].Reason())
	})
}

func TestUpdateStatusUseCase_ReassignsEscalatedComplaint(t *testing.T) {
	for _, target := range []string{"under_review", "in_progress"} {
		t.Run(target, func(t *testing.T) {
			grievance := storedComplaint(t, uintPtr(3), complaint.StatusEscalated, complaint.LevelState)
			f := newUpdateStatusFixture(t, grievance)

			result, err := f.uc.Execute(context.Background(), updateCommand(target, "reassigned to state cell"))
			require.NoError(t, err)

			assert.Equal(t, target, result.Status)
			assert.Equal(t, "state", result.EscalationLevel)

			require.Len(t, f.histories.Created, 1)
			change := f.histories.Created[0]
			assert.Equal(t, complaint.StatusEscalated, change.OldStatus())
			assert.Equal(t, complaint.LevelState, change.NewLevel())
		})
	}
}

func TestUpdateStatusUseCase_InvalidTransitions(t *testing.T) {
	cases := []struct {
		name           string
		from           complaint.Status
		target         string
		note           string
		wantValidation bool
	}{
		{name: "submitted cannot jump to in_progress", from: complaint.StatusSubmitted, target: "in_progress"},
		{name: "submitted cannot jump to resolved", from: complaint.StatusSubmitted, target: "resolved", note: "done"},
		{name: "resolved cannot return to review", from: complaint.StatusResolved, target: "under_review"},
		{name: "closed is terminal", from: complaint.StatusClosed, target: "in_progress"},
		{name: "manual escalation refused", from: complaint.StatusInProgress, target: "escalated"},
		{name: "cannot move back to submitted", from: complaint.StatusUnderReview, target: "submitted"},
		{name: "closure goes through close operation", from: complaint.StatusResolved, target: "closed", wantValidation: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grievance := storedComplaint(t, uintPtr(3), tc.from, complaint.LevelDistrict)
			f := newUpdateStatusFixture(t, grievance)

			_, err := f.uc.Execute(context.Background(), updateCommand(tc.target, tc.note))
			require.Error(t, err)
			if tc.wantValidation {
				assert.True(t, apperrors.IsValidationError(err), "got %v", err)
			} else {
				assert.True(t, apperrors.IsStateInvalidError(err), "got %v", err)
			}
			assert.Empty(t, f.complaints.Updated)
			assert.Empty(t, f.auditor.Records)
		})
	}
}

func TestUpdateStatusUseCase_PendingAnchorRefreshedInPlace(t *testing.T) {
	grievance := storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict)
	f := newUpdateStatusFixture(t, grievance)
	record := pendingAnchor(t)
	f.anchors.GetByComplaintIDFunc = func(ctx context.Context, complaintID uint) (*anchor.Record, error) {
		return record, nil
	}

	_, err := f.uc.Execute(context.Background(), updateCommand("under_review", ""))
	require.NoError(t, err)

	require.Len(t, f.anchors.Updated, 1)
	assert.Equal(t, anchor.StatusPending, record.Status())
	assert.Equal(t, anchor.OpCreate, record.Operation())
	assert.Equal(t, uint64(1), record.StatusNonce())
	assert.NotEqual(t, strings.Repeat("c", 64), record.StatusHash())
}

func TestUpdateStatusUseCase_BusyAnchorLeftAlone(t *testing.T) {
	t.Run("in-flight record", func(t *testing.T) {
		grievance := storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict)
		f := newUpdateStatusFixture(t, grievance)
		record := pendingAnchor(t)
		require.NoError(t, record.MarkInFlight())
		f.anchors.GetByComplaintIDFunc = func(ctx context.Context, complaintID uint) (*anchor.Record, error) {
			return record, nil
		}

		_, err := f.uc.Execute(context.Background(), updateCommand("under_review", ""))
		require.NoError(t, err)
		assert.Empty(t, f.anchors.Updated)
		assert.Equal(t, anchor.StatusInFlight, record.Status())
	})

	t.Run("missing record", func(t *testing.T) {
		grievance := storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict)
		f := newUpdateStatusFixture(t, grievance)

		_, err := f.uc.Execute(context.Background(), updateCommand("under_review", ""))
		require.NoError(t, err)
		assert.Empty(t, f.anchors.Updated)
	})
}

func TestUpdateStatusUseCase_UnknownStatus(t *testing.T) {
	grievance := storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict)
	f := newUpdateStatusFixture(t, grievance)

	_, err := f.uc.Execute(context.Background(), updateCommand("cancelled", ""))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err), "got %v", err)
}

func TestUpdateStatusUseCase_UnknownComplaint(t *testing.T) {
	f := newUpdateStatusFixture(t, storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict))
	cmd := updateCommand("under_review", "")
	cmd.ComplaintSID = "cmp_doesNotExist"

	_, err := f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}

func TestUpdateStatusUseCase_AnonymousCaller(t *testing.T) {
	f := newUpdateStatusFixture(t, storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict))
	cmd := updateCommand("under_review", "")
	cmd.CallerID = 0

	_, err := f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}
