package syncevent

import "strings"

// Outcome is the per-item processing result, serialized exactly as it
// appears on the wire: "accepted", "duplicate", or "rejected:<reason>".
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeDuplicate Outcome = "duplicate"
)

// RejectReason is the machine-readable cause of a rejection.
type RejectReason string

const (
	ReasonUserMismatch         RejectReason = "user_mismatch"
	ReasonUnsupportedEntity    RejectReason = "unsupported_entity"
	ReasonUnsupportedOperation RejectReason = "unsupported_operation"
	ReasonAppendOnly           RejectReason = "append_only"
	ReasonStale                RejectReason = "stale"
	ReasonInvalidPayload       RejectReason = "invalid_payload"
	ReasonTransient            RejectReason = "transient"
)

var validReasons = map[RejectReason]bool{
	ReasonUserMismatch:         true,
	ReasonUnsupportedEntity:    true,
	ReasonUnsupportedOperation: true,
	ReasonAppendOnly:           true,
	ReasonStale:                true,
	ReasonInvalidPayload:       true,
	ReasonTransient:            true,
}

// Rejected builds a rejection outcome for the given reason.
func Rejected(reason RejectReason) Outcome {
	return Outcome("rejected:" + string(reason))
}

func (o Outcome) String() string { return string(o) }

func (o Outcome) IsValid() bool {
	if o == OutcomeAccepted || o == OutcomeDuplicate {
		return true
	}
	reason, ok := o.rejectReason()
	return ok && validReasons[reason]
}

func (o Outcome) IsAccepted() bool { return o == OutcomeAccepted }

func (o Outcome) IsDuplicate() bool { return o == OutcomeDuplicate }

func (o Outcome) IsRejected() bool {
	_, ok := o.rejectReason()
	return ok
}

// Reason returns the rejection reason, or empty for non-rejections.
func (o Outcome) Reason() RejectReason {
	reason, _ := o.rejectReason()
	return reason
}

// IsRetryable reports whether the device should resubmit the item.
func (o Outcome) IsRetryable() bool {
	return o.Reason() == ReasonTransient
}

func (o Outcome) rejectReason() (RejectReason, bool) {
	s := string(o)
	if !strings.HasPrefix(s, "rejected:") {
		return "", false
	}
	return RejectReason(strings.TrimPrefix(s, "rejected:")), true
}
