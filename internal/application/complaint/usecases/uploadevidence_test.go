package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahay-inc/sahay/internal/domain/complaint"
	apperrors "github.com/sahay-inc/sahay/internal/shared/errors"
	"github.com/sahay-inc/sahay/internal/shared/logger"
)

type uploadEvidenceFixture struct {
	complaints *mockComplaintRepository
	evidences  *mockEvidenceRepository
	store      *mockEvidenceStore
	auditor    *mockAuditor
	uc         *UploadEvidenceUseCase
}

func newUploadEvidenceFixture(grievance *complaint.Complaint) *uploadEvidenceFixture {
	f := &uploadEvidenceFixture{
		complaints: &mockComplaintRepository{
			GetBySIDFunc: func(ctx context.Context, sid string) (*complaint.Complaint, error) {
				if grievance != nil && sid == grievance.SID() {
					return grievance, nil
				}
				return nil, apperrors.NewNotFoundError("complaint not found")
			},
		},
		evidences: &mockEvidenceRepository{},
		store:     &mockEvidenceStore{},
		auditor:   &mockAuditor{},
	}
	f.uc = NewUploadEvidenceUseCase(
		f.complaints, f.evidences, f.store,
		&mockTxManager{}, f.auditor, logger.NewLogger(),
	)
	return f
}

func uploadCommand(content []byte, contentType string) UploadEvidenceCommand {
	return UploadEvidenceCommand{
		CallerID:     3,
		CallerSID:    "user_abc123",
		ComplaintSID: "cmp_xK9mP2vL3nQ",
		Content:      content,
		ContentType:  contentType,
		IP:           "10.0.0.1",
		Device:       "android-13",
	}
}

func TestUploadEvidenceUseCase_Execute(t *testing.T) {
	grievance := storedComplaint(t, uintPtr(3), complaint.StatusUnderReview, complaint.LevelDistrict)
	f := newUploadEvidenceFixture(grievance)
	content := []byte("jpeg bytes of the broken water cooler")

	result, err := f.uc.Execute(context.Background(), uploadCommand(content, "image/jpeg"))
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	wantHash := hex.EncodeToString(sum[:])
	assert.True(t, strings.HasPrefix(result.EvidenceSID, "evd_"))
	assert.Equal(t, grievance.SID(), result.ComplaintSID)
	assert.Equal(t, wantHash, result.ContentHash)
	assert.Equal(t, "image/jpeg", result.ContentType)
	assert.Equal(t, int64(len(content)), result.SizeBytes)

	require.Len(t, f.store.Stored, 1)
	assert.Equal(t, content, f.store.Stored[0])

	require.Len(t, f.evidences.Created, 1)
	stored := f.evidences.Created[0]
	assert.Equal(t, uint(1), stored.ComplaintID())
	assert.Equal(t, "complaint-evidence/"+wantHash, stored.ObjectKey())

	require.Len(t, f.auditor.Records, 1)
	record := f.auditor.Records[0]
	assert.Equal(t, "user_abc123", record.ActorID)
	assert.Equal(t, "complaint.evidence_add", record.Action)
	assert.Equal(t, "evidence", record.EntityType)
	assert.Equal(t, stored.SID(), record.EntityID)
	assert.Equal(t, grievance.SID(), record.Payload["complaint"])
	assert.Equal(t, wantHash, record.Payload["content_hash"])
}

func TestUploadEvidenceUseCase_AnonymousComplaintAcceptsAnyCaller(t *testing.T) {
	grievance := storedComplaint(t, nil, complaint.StatusSubmitted, complaint.LevelDistrict)
	f := newUploadEvidenceFixture(grievance)

	cmd := uploadCommand([]byte("%PDF-1.4 discharge summary"), "application/pdf")
	cmd.CallerID = 9
	cmd.CallerSID = "user_other99"

	result, err := f.uc.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, grievance.SID(), result.ComplaintSID)
	assert.Len(t, f.evidences.Created, 1)
}

func TestUploadEvidenceUseCase_NonOwnerForbidden(t *testing.T) {
	grievance := storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict)
	f := newUploadEvidenceFixture(grievance)

	cmd := uploadCommand([]byte("not yours"), "image/png")
	cmd.CallerID = 9

	_, err := f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeForbidden, appErr.Type)
	assert.Empty(t, f.store.Stored)
	assert.Empty(t, f.evidences.Created)
}

func TestUploadEvidenceUseCase_Validation(t *testing.T) {
	grievance := storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict)
	f := newUploadEvidenceFixture(grievance)

	tests := []struct {
		name        string
		content     []byte
		contentType string
	}{
		{name: "empty content", content: nil, contentType: "image/jpeg"},
		{name: "oversized content", content: make([]byte, maxEvidenceSize+1), contentType: "image/jpeg"},
		{name: "executable content type", content: []byte("MZ"), contentType: "application/x-msdownload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), uploadCommand(tt.content, tt.contentType))
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err), "got %v", err)
		})
	}
	assert.Empty(t, f.store.Stored)
}

func TestUploadEvidenceUseCase_StoreFailure(t *testing.T) {
	grievance := storedComplaint(t, uintPtr(3), complaint.StatusSubmitted, complaint.LevelDistrict)
	f := newUploadEvidenceFixture(grievance)
	f.store.PutFunc = func(ctx context.Context, content []byte) (string, string, error) {
		return "", "", errors.New("bucket unreachable")
	}

	_, err := f.uc.Execute(context.Background(), uploadCommand([]byte("photo"), "image/jpeg"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
	assert.Empty(t, f.evidences.Created)
}

func TestUploadEvidenceUseCase_UnknownComplaint(t *testing.T) {
	f := newUploadEvidenceFixture(nil)

	cmd := uploadCommand([]byte("photo"), "image/jpeg")
	cmd.ComplaintSID = "cmp_doesNotExist"

	_, err := f.uc.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err), "got %v", err)
}
