package anchor

import (
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// Status is the submission state of an anchor record.
type Status string

const (
	// StatusPending means the record is queued for submission.
	StatusPending Status = "pending"
	// StatusInFlight means a submission is on the wire. At most one record
	// per complaint is ever in flight.
	StatusInFlight Status = "in_flight"
	// StatusConfirmed means the chain accepted the last submission.
	StatusConfirmed Status = "confirmed"
	// StatusFailed means the payload was rejected permanently.
	StatusFailed Status = "failed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInFlight, StatusConfirmed, StatusFailed:
		return true
	}
	return false
}

// Operation is the contract call the record's next submission performs.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
)

func (o Operation) IsValid() bool { return o == OpCreate || o == OpUpdate }

// Record tracks one complaint's on-chain anchor: the digests last sealed,
// the strictly increasing status nonce, and the submission lifecycle of the
// next contract call.
type Record struct {
	id            uint
	sid           string
	complaintID   uint
	complaintHash string
	slaHash       string
	statusHash    string
	statusNonce   uint64
	operation     Operation
	status        Status
	txHash        *string
	attempts      int
	nextAttemptAt *time.Time
	lastError     *string
	anchoredAt    *time.Time
	createdAtTS   time.Time
	updatedAtTS   time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewRecord queues the initial createAnchor submission for a complaint.
func NewRecord(complaintID uint, complaintHash, slaHash, statusHash string, createdAtTS time.Time) (*Record, error) {
	if complaintID == 0 {
		return nil, fmt.Errorf("complaint ID is required")
	}
	if !ValidHash(complaintHash) {
		return nil, fmt.Errorf("complaint hash must be 32 bytes hex")
	}
	if !ValidHash(slaHash) {
		return nil, fmt.Errorf("sla hash must be 32 bytes hex")
	}
	if !ValidHash(statusHash) {
		return nil, fmt.Errorf("status hash must be 32 bytes hex")
	}
	if createdAtTS.IsZero() {
		return nil, fmt.Errorf("createdAt timestamp is required")
	}

	sid, err := id.NewAnchorID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate anchor ID: %w", err)
	}

	now := time.Now()
	return &Record{
		sid:           sid,
		complaintID:   complaintID,
		complaintHash: complaintHash,
		slaHash:       slaHash,
		statusHash:    statusHash,
		statusNonce:   1,
		operation:     OpCreate,
		status:        StatusPending,
		createdAtTS:   createdAtTS,
		updatedAtTS:   createdAtTS,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructRecord reconstructs an anchor record from persistence.
func ReconstructRecord(
	internalID uint,
	sid string,
	complaintID uint,
	complaintHash, slaHash, statusHash string,
	statusNonce uint64,
	operation Operation,
	status Status,
	txHash *string,
	attempts int,
	nextAttemptAt *time.Time,
	lastError *string,
	anchoredAt *time.Time,
	createdAtTS, updatedAtTS time.Time,
	createdAt, updatedAt time.Time,
) (*Record, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("anchor record ID cannot be zero")
	}
	if !operation.IsValid() {
		return nil, fmt.Errorf("invalid anchor operation: %s", operation)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid anchor status: %s", status)
	}
	return &Record{
		id:            internalID,
		sid:           sid,
		complaintID:   complaintID,
		complaintHash: complaintHash,
		slaHash:       slaHash,
		statusHash:    statusHash,
		statusNonce:   statusNonce,
		operation:     operation,
		status:        status,
		txHash:        txHash,
		attempts:      attempts,
		nextAttemptAt: nextAttemptAt,
		lastError:     lastError,
		anchoredAt:    anchoredAt,
		createdAtTS:   createdAtTS,
		updatedAtTS:   updatedAtTS,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (r *Record) ID() uint                  { return r.id }
func (r *Record) SID() string               { return r.sid }
func (r *Record) ComplaintID() uint         { return r.complaintID }
func (r *Record) ComplaintHash() string     { return r.complaintHash }
func (r *Record) SLAHash() string           { return r.slaHash }
func (r *Record) StatusHash() string        { return r.statusHash }
func (r *Record) StatusNonce() uint64       { return r.statusNonce }
func (r *Record) Operation() Operation      { return r.operation }
func (r *Record) Status() Status            { return r.status }
func (r *Record) TxHash() *string           { return r.txHash }
func (r *Record) Attempts() int             { return r.attempts }
func (r *Record) NextAttemptAt() *time.Time { return r.nextAttemptAt }
func (r *Record) LastError() *string        { return r.lastError }
func (r *Record) AnchoredAt() *time.Time    { return r.anchoredAt }
func (r *Record) CreatedAtTS() time.Time    { return r.createdAtTS }
func (r *Record) UpdatedAtTS() time.Time    { return r.updatedAtTS }
func (r *Record) CreatedAt() time.Time      { return r.createdAt }
func (r *Record) UpdatedAt() time.Time      { return r.updatedAt }

// SetID sets the record ID (only for persistence layer use).
func (r *Record) SetID(internalID uint) error {
	if r.id != 0 {
		return fmt.Errorf("anchor record ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("anchor record ID cannot be zero")
	}
	r.id = internalID
	return nil
}

// CreateRequest builds the contract call for the queued create operation.
func (r *Record) CreateRequest() (CreateRequest, error) {
	if r.operation != OpCreate {
		return CreateRequest{}, fmt.Errorf("record is not queued for create")
	}
	return CreateRequest{
		ComplaintHash: r.complaintHash,
		SLAHash:       r.slaHash,
		StatusHash:    r.statusHash,
		CreatedAt:     r.createdAtTS,
		Nonce:         r.statusNonce,
	}, nil
}

// UpdateRequest builds the contract call for the queued update operation.
func (r *Record) UpdateRequest() (UpdateRequest, error) {
	if r.operation != OpUpdate {
		return UpdateRequest{}, fmt.Errorf("record is not queued for update")
	}
	return UpdateRequest{
		ComplaintHash: r.complaintHash,
		StatusHash:    r.statusHash,
		UpdatedAt:     r.updatedAtTS,
		Nonce:         r.statusNonce,
	}, nil
}

// IsDue reports whether the worker may pick the record up.
func (r *Record) IsDue(now time.Time) bool {
	if r.status != StatusPending {
		return false
	}
	return r.nextAttemptAt == nil || !now.Before(*r.nextAttemptAt)
}

// MarkInFlight claims the record for submission.
func (r *Record) MarkInFlight() error {
	if r.status != StatusPending {
		return fmt.Errorf("cannot submit anchor in status %s", r.status)
	}
	r.status = StatusInFlight
	r.touch()
	return nil
}

// MarkConfirmed records chain acceptance of the in-flight submission.
func (r *Record) MarkConfirmed(txHash string) error {
	if r.status != StatusInFlight {
		return fmt.Errorf("cannot confirm anchor in status %s", r.status)
	}
	if txHash == "" {
		return fmt.Errorf("transaction hash is required")
	}
	now := time.Now()
	r.status = StatusConfirmed
	r.txHash = &txHash
	r.anchoredAt = &now
	r.lastError = nil
	r.nextAttemptAt = nil
	r.touch()
	return nil
}

// MarkRetry requeues the record after a transient failure.
func (r *Record) MarkRetry(chainErr string, nextAttemptAt time.Time) error {
	if r.status != StatusInFlight {
		return fmt.Errorf("cannot retry anchor in status %s", r.status)
	}
	r.status = StatusPending
	r.attempts++
	r.lastError = &chainErr
	r.nextAttemptAt = &nextAttemptAt
	r.touch()
	return nil
}

// MarkFailed abandons the record after a permanent rejection.
func (r *Record) MarkFailed(chainErr string) error {
	if r.status != StatusInFlight {
		return fmt.Errorf("cannot fail anchor in status %s", r.status)
	}
	r.status = StatusFailed
	r.attempts++
	r.lastError = &chainErr
	r.nextAttemptAt = nil
	r.touch()
	return nil
}

// Reclaim returns a stranded in-flight record to the queue. Callers must
// hold the exclusive worker lock: submission runs are serialized, so a
// record still in flight when a new run starts has no submission on the
// wire.
func (r *Record) Reclaim() error {
	if r.status != StatusInFlight {
		return fmt.Errorf("cannot reclaim anchor in status %s", r.status)
	}
	r.status = StatusPending
	r.nextAttemptAt = nil
	r.touch()
	return nil
}

// RequeueFailed puts an abandoned record back in the queue with a fresh
// attempt budget. The last error is kept for the record's history.
func (r *Record) RequeueFailed() error {
	if r.status != StatusFailed {
		return fmt.Errorf("cannot requeue anchor in status %s", r.status)
	}
	r.status = StatusPending
	r.attempts = 0
	r.nextAttemptAt = nil
	r.touch()
	return nil
}

// QueueStatusUpdate seals a new status hash and queues an updateStatus call
// with the next nonce. Only a confirmed anchor can be updated.
func (r *Record) QueueStatusUpdate(statusHash string, updatedAtTS time.Time) error {
	if r.status != StatusConfirmed {
		return fmt.Errorf("cannot queue status update on %s anchor", r.status)
	}
	if !ValidHash(statusHash) {
		return fmt.Errorf("status hash must be 32 bytes hex")
	}
	if updatedAtTS.Before(r.createdAtTS) {
		return fmt.Errorf("updatedAt must not precede createdAt")
	}

	r.statusHash = statusHash
	r.updatedAtTS = updatedAtTS
	r.statusNonce++
	r.operation = OpUpdate
	r.status = StatusPending
	r.attempts = 0
	r.txHash = nil
	r.nextAttemptAt = nil
	r.touch()
	return nil
}

// RefreshQueued replaces the status snapshot of a still-pending submission so
// it carries the complaint's latest state. The nonce is unchanged because
// nothing has reached the chain yet; in-flight records must not be refreshed.
// The SLA hash seals the terms at filing and is never refreshed.
func (r *Record) RefreshQueued(statusHash string, updatedAtTS time.Time) error {
	if r.status != StatusPending {
		return fmt.Errorf("cannot refresh anchor in status %s", r.status)
	}
	if !ValidHash(statusHash) {
		return fmt.Errorf("status hash must be 32 bytes hex")
	}
	if updatedAtTS.Before(r.createdAtTS) {
		return fmt.Errorf("updatedAt must not precede createdAt")
	}
	r.statusHash = statusHash
	r.updatedAtTS = updatedAtTS
	r.touch()
	return nil
}

// AdoptNonce resynchronizes after ErrInvalidNonce using the nonce read from
// the chain. The next submission uses onchain+1.
func (r *Record) AdoptNonce(onchainNonce uint64) error {
	if r.status == StatusConfirmed || r.status == StatusFailed {
		return fmt.Errorf("cannot adopt nonce on %s anchor", r.status)
	}
	r.statusNonce = onchainNonce + 1
	r.touch()
	return nil
}

func (r *Record) touch() {
	r.updatedAt = time.Now()
}
