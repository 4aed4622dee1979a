package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/anchor"
	"github.com/sahay-inc/sahay/internal/domain/complaint"
	"github.com/sahay-inc/sahay/internal/domain/outbox"
	"github.com/sahay-inc/sahay/internal/domain/user"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/services/sanitize"
)

func submitterWithPhone(t *testing.T, phone *string) *user.User {
	t.Helper()
	t0 := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	citizen, err := user.ReconstructUser(3, "user_abc123", phone, "asha_helped_citizen", "hashed:pw", user.StatusActive, t0, t0, 1)
	require.NoError(t, err)
	return citizen
}

type closeComplaintFixture struct {
	complaints *mockComplaintRepository
	histories  *mockHistoryRepository
	anchors    *mockAnchorRepository
	users      *mockUserDirectory
	messages   *mockMessageQueue
	auditor    *mockAuditor
	uc         *CloseComplaintUseCase
}

func newCloseComplaintFixture(t *testing.T, grievance *complaint.Complaint) *closeComplaintFixture {
	t.Helper()
	f := &closeComplaintFixture{
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
		users:     &mockUserDirectory{},
		messages:  &mockMessageQueue{},
		auditor:   &mockAuditor{},
	}
	f.uc = NewCloseComplaintUseCase(
		f.complaints, f.histories, f.anchors, f.users, f.messages,
		sanitize.NewService(), &mockTxManager{}, f.auditor, logger.NewLogger(),
	)
	return f
}

func closeCommand() CloseComplaintCommand {
	return CloseComplaintCommand{
		CallerID:     officerID,
		CallerSID:    "user_off7x9",
		ComplaintSID: "cmp_xK9mP2vL3nQ",
		Rating:       4,
		Comments:     "Fixed after escalation, thank you.",
		IP:           "10.0.0.2",
		Device:       "officer-console",
	}
}

func TestCloseComplaintUseCase_Execute(t *testing.T) {
	grievance := storedComplaint(t, uintPtr(3), complaint.StatusResolved, complaint.LevelState)
	f := newCloseComplaintFixture(t, grievance)
	phone := "9876543210"
	f.users.GetByIDFunc = func(ctx context.Context, id uint) (*user.User, error) {
		require.Equal(t, uint(3), id)
		return submitterWithPhone(t, &phone), nil
	}
	record := confirmedAnchor(t)
	f.anchors.GetByComplaintIDFunc = func(ctx context.Context, complaintID uint) (*anchor.Record, error) {
		return record, nil
	}

	result, err := f.uc.Execute(context.Background(), closeCommand())
	require.NoError(t, err)

	assert.Equal(t, "closed", result.Status)
	require.NotNil(t, result.ClosureHash)
	assert.Len(t, *result.ClosureHash, 64)
	require.NotNil(t, result.ClosedAt)
	_, parseErr := time.Parse(time.RFC3339, *result.ClosedAt)
	assert.NoError(t, parseErr)

	require.NotNil(t, grievance.FeedbackRating())
	assert.Equal(t, 4, *grievance.FeedbackRating())
	require.NotNil(t, grievance.FeedbackComments())
	assert.Equal(t, "Fixed after escalation, thank you.", *grievance.FeedbackComments())

	require.Len(t, f.histories.Created, 1)
	change := f.histories.Created[0]
	assert.Equal(t, complaint.StatusResolved, change.OldStatus())
	assert.Equal(t, complaint.StatusClosed, change.NewStatus())
	require.NotNil(t, change.ChangedByUserID())
	assert.Equal(t, officerID, *change.ChangedByUserID())

	require.Len(t, f.anchors.Updated, 1)
	assert.Equal(t, anchor.StatusPending, record.Status())
	assert.Equal(t, anchor.OpUpdate, record.Operation())
	assert.Equal(t, uint64(2), record.StatusNonce())

	require.Len(t, f.messages.Messages, 1)
	message := f.messages.Messages[0]
	assert.Equal(t, outbox.ChannelSMS, message.Channel())
	assert.Equal(t, "9876543210", message.Recipient())
	assert.Equal(t, uint(3), message.UserID())
	assert.Contains(t, message.Payload(), grievance.SID())
	assert.Contains(t, message.Payload(), "closed")

	require.Len(t, f.auditor.Records, 1)
	rec := f.auditor.Records[0]
	assert.Equal(t, "complaint.close", rec.Action)
	assert.Equal(t, grievance.SID(), rec.EntityID)
	assert.Equal(t, "user_off7x9", rec.ActorID)
	assert.Equal(t, 4, rec.Payload["rating"])
	assert.Equal(t, *grievance.ClosureHash(), rec.Payload["closure_hash"])
}

func TestCloseComplaintUseCase_NoRecipientNoMessage(t *testing.T) {
	t.Run("alias-only submitter", func(t *testing.T) {
		grievance := storedComplaint(t, uintPtr(3), complaint.StatusResolved, complaint.LevelDistrict)
		f := newCloseComplaintFixture(t, grievance)
		f.users.GetByIDFunc = func(ctx context.Context, id uint) (*user.User, error) {
			return submitterWithPhone(t, nil), nil
		}

		result, err := f.uc.Execute(context.Background(), closeCommand())
		require.NoError(t, err)
		assert.Equal(t, "closed", result.Status)
		assert.Empty(t, f.messages.Messages)
	})

	t.Run("submitter lookup fails", func(t *testing.T) {
		grievance := storedComplaint(t, uintPtr(3), complaint.StatusResolved, complaint.LevelDistrict)
		f := newCloseComplaintFixture(t, grievance)

		result, err := f.uc.Execute(context.Background(), closeCommand())
		require.NoError(t, err)
		assert.Equal(t, "closed", result.Status)
		assert.Empty(t, f.messages.Messages)
	})

	t.Run("anonymous complaint", func(t *testing.T) {
		grievance := storedComplaint(t, nil, complaint.StatusResolved, complaint.LevelDistrict)
		f := newCloseComplaintFixture(t, grievance)
		f.users.GetByIDFunc = func(ctx context.Context, id uint) (*user.User, error) {
			t.Error("anonymous complaints must not resolve a submitter")
			return nil, apperrors.NewNotFoundError("user not found")
		}

		result, err := f.uc.Execute(context.Background(), closeCommand())
		require.NoError(t, err)
		assert.Equal(t, "closed", result.Status)
		assert.Empty(t, f.messages.Messages)
	})
}

func TestCloseComplaintUseCase_OnlyResolvedCanClose(t *testing.T) {
	for _, status := range []complaint.Status{
		complaint.StatusSubmitted,
		complaint.StatusUnderReview,
		complaint.StatusInProgress,
		complaint.StatusEscalated,
		complaint.StatusClosed,
	} {
		t.Run(status.String(), func(t *testing.T) {
			grievance := storedComplaint(t, uintPtr(3), status, complaint.LevelDistrict)
			f := newCloseComplaintFixture(t, grievance)

			_, err := f.uc.Execute(context.Background(), closeCommand())
			require.Error(t, err)
			assert.True(t, apperrors.IsStateInvalidError(err), "got %v", err)
			assert.Empty(t, f.complaints.Updated)
			assert.Empty(t, f.auditor.Records)
		})
	}
}

func TestCloseComplaintUseCase_FeedbackValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cmd *CloseComplaintCommand)
	}{
		{"rating below range", func(cmd *CloseComplaintCommand) { cmd.Rating = 0 }},
		{"rating above range", func(cmd *CloseComplaintCommand) { cmd.Rating = 6 }},
		{"empty comments", func(cmd *CloseComplaintCommand) { cmd.Comments = "  " }},
		{"markup only comments", func(cmd *CloseComplaintCommand) { cmd.Comments = "<script>alert(1)</script>" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grievance := storedComplaint(t, uintPtr(3), complaint.StatusResolved, complaint.LevelDistrict)
			f := newCloseComplaintFixture(t, grievance)
			cmd := closeCommand()
			tc.mutate(&cmd)

			_, err := f.uc.Execute(context.Background(), cmd)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err), "got %v", err)
			assert.Empty(t, f.complaints.Updated)
		})
	}
}

func TestCloseComplaintUseCase_UnknownComplaint(t *testing.T) {
	f := newCloseComplaintFixture(t, storedComplaint(t, uintPtr(3), complaint.StatusResolved, complaint.LevelDistrict))
	cmd := closeCommand()
	cmd.ComplaintSID = "cmp_doesNotExist"

	_, err := f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}
