package anchor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testComplaintHash = strings.Repeat("ab", 32)
	testSLAHash       = strings.Repeat("cd", 32)
	testStatusHash    = strings.Repeat("ef", 32)
	testStatusHash2   = strings.Repeat("12", 32)
)

func newPendingRecord(t *testing.T) *Record {
	t.Helper()
	record, err := NewRecord(7, testComplaintHash, testSLAHash, testStatusHash, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return record
}

func newConfirmedRecord(t *testing.T) *Record {
	t.Helper()
	record := newPendingRecord(t)
	require.NoError(t, record.MarkInFlight())
	require.NoError(t, record.MarkConfirmed("0x"+strings.Repeat("aa", 32)))
	return record
}

func TestNewRecord(t *testing.T) {
	record := newPendingRecord(t)

	assert.True(t, strings.HasPrefix(record.SID(), "anch_"))
	assert.Equal(t, uint(7), record.ComplaintID())
	assert.Equal(t, uint64(1), record.StatusNonce())
	assert.Equal(t, OpCreate, record.Operation())
	assert.Equal(t, StatusPending, record.Status())
	assert.Equal(t, 0, record.Attempts())
	assert.Equal(t, record.CreatedAtTS(), record.UpdatedAtTS())
}

func TestNewRecordValidation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		complaintID   uint
		complaintHash string
		slaHash       string
		statusHash    string
		createdAt     time.Time
	}{
		{name: "missing complaint", complaintID: 0, complaintHash: testComplaintHash, slaHash: testSLAHash, statusHash: testStatusHash, createdAt: now},
		{name: "short complaint hash", complaintID: 1, complaintHash: "abcd", slaHash: testSLAHash, statusHash: testStatusHash, createdAt: now},
		{name: "uppercase hash", complaintID: 1, complaintHash: strings.ToUpper(testComplaintHash), slaHash: testSLAHash, statusHash: testStatusHash, createdAt: now},
		{name: "bad sla hash", complaintID: 1, complaintHash: testComplaintHash, slaHash: "zz", statusHash: testStatusHash, createdAt: now},
		{name: "bad status hash", complaintID: 1, complaintHash: testComplaintHash, slaHash: testSLAHash, statusHash: "", createdAt: now},
		{name: "zero createdAt", complaintID: 1, complaintHash: testComplaintHash, slaHash: testSLAHash, statusHash: testStatusHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecord(tt.complaintID, tt.complaintHash, tt.slaHash, tt.statusHash, tt.createdAt)
			assert.Error(t, err)
		})
	}
}

func TestRecordSubmissionLifecycle(t *testing.T) {
	record := newPendingRecord(t)

	req, err := record.CreateRequest()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), req.Nonce)
	require.NoError(t, req.Validate(time.Now()))

	require.NoError(t, record.MarkInFlight())
	assert.Equal(t, StatusInFlight, record.Status())

	// Cannot double-claim.
	assert.Error(t, record.MarkInFlight())

	require.NoError(t, record.MarkConfirmed("0xdeadbeef"))
	assert.Equal(t, StatusConfirmed, record.Status())
	require.NotNil(t, record.TxHash())
	assert.Equal(t, "0xdeadbeef", *record.TxHash())
	assert.NotNil(t, record.AnchoredAt())
	assert.Nil(t, record.LastError())
}

func TestRecordRetry(t *testing.T) {
	record := newPendingRecord(t)
	require.NoError(t, record.MarkInFlight())

	next := time.Now().Add(time.Minute)
	require.NoError(t, record.MarkRetry("chain unavailable", next))

	assert.Equal(t, StatusPending, record.Status())
	assert.Equal(t, 1, record.Attempts())
	require.NotNil(t, record.LastError())
	assert.Equal(t, "chain unavailable", *record.LastError())
	require.NotNil(t, record.NextAttemptAt())
	assert.Equal(t, next, *record.NextAttemptAt())

	assert.False(t, record.IsDue(time.Now()))
	assert.True(t, record.IsDue(next.Add(time.Second)))
}

func TestRecordMarkFailed(t *testing.T) {
	record := newPendingRecord(t)
	require.NoError(t, record.MarkInFlight())
	require.NoError(t, record.MarkFailed("payload rejected"))

	assert.Equal(t, StatusFailed, record.Status())
	assert.False(t, record.IsDue(time.Now().Add(time.Hour)))
	assert.Error(t, record.MarkInFlight())
}

func TestRecordReclaim(t *testing.T) {
	record := newPendingRecord(t)
	require.NoError(t, record.MarkInFlight())
	require.NoError(t, record.Reclaim())

	assert.Equal(t, StatusPending, record.Status())
	assert.Equal(t, 0, record.Attempts())
	assert.True(t, record.IsDue(time.Now()))

	assert.Error(t, record.Reclaim(), "only in-flight records can be reclaimed")
}

func TestRecordRequeueFailed(t *testing.T) {
	record := newPendingRecord(t)
	require.NoError(t, record.MarkInFlight())
	next := time.Now().Add(time.Minute)
	require.NoError(t, record.MarkRetry("chain unavailable", next))
	require.NoError(t, record.MarkInFlight())
	require.NoError(t, record.MarkFailed("gave up"))
	require.Equal(t, 2, record.Attempts())

	require.NoError(t, record.RequeueFailed())

	assert.Equal(t, StatusPending, record.Status())
	assert.Equal(t, 0, record.Attempts())
	assert.Nil(t, record.NextAttemptAt())
	require.NotNil(t, record.LastError())
	assert.Equal(t, "gave up", *record.LastError())
	assert.True(t, record.IsDue(time.Now()))

	assert.Error(t, record.RequeueFailed(), "only failed records can be requeued")
}

func TestRecordQueueStatusUpdate(t *testing.T) {
	record := newConfirmedRecord(t)
	updatedAt := record.CreatedAtTS().Add(2 * time.Hour)

	require.NoError(t, record.QueueStatusUpdate(testStatusHash2, updatedAt))

	assert.Equal(t, uint64(2), record.StatusNonce())
	assert.Equal(t, OpUpdate, record.Operation())
	assert.Equal(t, StatusPending, record.Status())
	assert.Equal(t, testStatusHash2, record.StatusHash())
	assert.Equal(t, 0, record.Attempts())
	assert.Nil(t, record.TxHash())

	req, err := record.UpdateRequest()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), req.Nonce)
	require.NoError(t, req.Validate())
}

func TestRecordNoncesStrictlyIncrease(t *testing.T) {
	record := newConfirmedRecord(t)
	seen := record.StatusNonce()

	for i := 0; i < 4; i++ {
		updatedAt := record.CreatedAtTS().Add(time.Duration(i+1) * time.Hour)
		require.NoError(t, record.QueueStatusUpdate(testStatusHash2, updatedAt))
		assert.Greater(t, record.StatusNonce(), seen)
		seen = record.StatusNonce()

		require.NoError(t, record.MarkInFlight())
		require.NoError(t, record.MarkConfirmed("0xtx"))
	}
}

func TestRecordQueueStatusUpdateGuards(t *testing.T) {
	t.Run("only confirmed anchors take updates", func(t *testing.T) {
		record := newPendingRecord(t)
		assert.Error(t, record.QueueStatusUpdate(testStatusHash2, time.Now()))
	})

	t.Run("updatedAt before createdAt", func(t *testing.T) {
		record := newConfirmedRecord(t)
		assert.Error(t, record.QueueStatusUpdate(testStatusHash2, record.CreatedAtTS().Add(-time.Minute)))
	})

	t.Run("bad status hash", func(t *testing.T) {
		record := newConfirmedRecord(t)
		assert.Error(t, record.QueueStatusUpdate("nothex", record.CreatedAtTS().Add(time.Hour)))
	})
}

func TestRecordRefreshQueued(t *testing.T) {
	record := newPendingRecord(t)
	later := record.CreatedAtTS().Add(30 * time.Minute)

	require.NoError(t, record.RefreshQueued(testStatusHash2, later))
	assert.Equal(t, testStatusHash2, record.StatusHash())
	assert.Equal(t, testSLAHash, record.SLAHash())
	assert.Equal(t, uint64(1), record.StatusNonce())
	assert.Equal(t, OpCreate, record.Operation())

	t.Run("in-flight records refuse", func(t *testing.T) {
		inflight := newPendingRecord(t)
		require.NoError(t, inflight.MarkInFlight())
		assert.Error(t, inflight.RefreshQueued(testStatusHash2, time.Now()))
	})

	t.Run("confirmed records refuse", func(t *testing.T) {
		confirmed := newConfirmedRecord(t)
		assert.Error(t, confirmed.RefreshQueued(testStatusHash2, time.Now()))
	})

	t.Run("rejects malformed hash", func(t *testing.T) {
		pending := newPendingRecord(t)
		assert.Error(t, pending.RefreshQueued("zz", time.Now()))
	})

	t.Run("rejects snapshot older than filing", func(t *testing.T) {
		pending := newPendingRecord(t)
		early := pending.CreatedAtTS().Add(-time.Minute)
		assert.Error(t, pending.RefreshQueued(testStatusHash2, early))
	})
}

func TestRecordAdoptNonce(t *testing.T) {
	record := newConfirmedRecord(t)
	require.NoError(t, record.QueueStatusUpdate(testStatusHash2, record.CreatedAtTS().Add(time.Hour)))
	require.NoError(t, record.MarkInFlight())
	require.NoError(t, record.MarkRetry("invalid nonce", time.Now()))

	require.NoError(t, record.AdoptNonce(41))
	assert.Equal(t, uint64(42), record.StatusNonce())

	t.Run("confirmed anchors refuse", func(t *testing.T) {
		confirmed := newConfirmedRecord(t)
		assert.Error(t, confirmed.AdoptNonce(10))
	})
}

func TestCreateRequestValidateWindow(t *testing.T) {
	now := time.Now()
	base := CreateRequest{
		ComplaintHash: testComplaintHash,
		SLAHash:       testSLAHash,
		StatusHash:    testStatusHash,
		Nonce:         1,
	}

	t.Run("within window", func(t *testing.T) {
		req := base
		req.CreatedAt = now.Add(-24 * time.Hour)
		assert.NoError(t, req.Validate(now))
	})

	t.Run("too old", func(t *testing.T) {
		req := base
		req.CreatedAt = now.Add(-31 * 24 * time.Hour)
		assert.Error(t, req.Validate(now))
	})

	t.Run("too far in future", func(t *testing.T) {
		req := base
		req.CreatedAt = now.Add(2 * time.Hour)
		assert.Error(t, req.Validate(now))
	})

	t.Run("zero nonce", func(t *testing.T) {
		req := base
		req.CreatedAt = now
		req.Nonce = 0
		assert.Error(t, req.Validate(now))
	})
}

func TestBackoffPolicy(t *testing.T) {
	policy := BackoffPolicy{Base: 30 * time.Second, Cap: 30 * time.Minute}

	assert.Equal(t, 30*time.Second, policy.Delay(0))
	assert.Equal(t, time.Minute, policy.Delay(1))
	assert.Equal(t, 2*time.Minute, policy.Delay(2))
	assert.Equal(t, 16*time.Minute, policy.Delay(5))
	assert.Equal(t, 30*time.Minute, policy.Delay(6))
	assert.Equal(t, 30*time.Minute, policy.Delay(20))
	assert.Equal(t, 30*time.Second, policy.Delay(-1))

	now := time.Now()
	assert.Equal(t, now.Add(time.Minute), policy.NextAttempt(now, 1))
}
