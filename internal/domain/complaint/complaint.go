// Package complaint implements the grievance lifecycle: submission,
// review, SLA-driven escalation across administrative tiers, and closure
// with submitter feedback.
package complaint

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/canonicaljson"
	"github.com/sahay-inc/sahay/internal/shared/id"
)

// Complaint is a citizen grievance. The submitter may be nil for anonymous
// complaints; in that case no requester-identifying data is ever attached
// to the record, its logs, or its audit entries.
type Complaint struct {
	id                  uint
	sid                 string
	submitterID         *uint
	category            Category
	payloadEncrypted    []byte
	status              Status
	escalationLevel     EscalationLevel
	escalationExhausted bool
	slaDeadline         time.Time
	resolutionNote      *string
	feedbackRating      *int
	feedbackComments    *string
	feedbackSubmittedAt *time.Time
	closureHash         *string
	closedAt            *time.Time
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

// NewComplaint creates a draft complaint. submitterID nil marks it anonymous.
func NewComplaint(submitterID *uint, category Category, payloadEncrypted []byte) (*Complaint, error) {
	if submitterID != nil && *submitterID == 0 {
		return nil, fmt.Errorf("submitter ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid complaint category: %s", category)
	}
	if len(payloadEncrypted) == 0 {
		return nil, fmt.Errorf("complaint payload is required")
	}

	sid, err := id.NewComplaintID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate complaint ID: %w", err)
	}

	now := time.Now()
	return &Complaint{
		sid:              sid,
		submitterID:      submitterID,
		category:         category,
		payloadEncrypted: payloadEncrypted,
		status:           StatusDraft,
		escalationLevel:  LevelDistrict,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructComplaint reconstructs a complaint from persistence.
func ReconstructComplaint(
	internalID uint,
	sid string,
	submitterID *uint,
	category Category,
	payloadEncrypted []byte,
	status Status,
	escalationLevel EscalationLevel,
	escalationExhausted bool,
	slaDeadline time.Time,
	resolutionNote *string,
	feedbackRating *int,
	feedbackComments *string,
	feedbackSubmittedAt *time.Time,
	closureHash *string,
	closedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Complaint, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("complaint ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid complaint category: %s", category)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid complaint status: %s", status)
	}
	if !escalationLevel.IsValid() {
		return nil, fmt.Errorf("invalid escalation level: %s", escalationLevel)
	}
	return &Complaint{
		id:                  internalID,
		sid:                 sid,
		submitterID:         submitterID,
		category:            category,
		payloadEncrypted:    payloadEncrypted,
		status:              status,
		escalationLevel:     escalationLevel,
		escalationExhausted: escalationExhausted,
		slaDeadline:         slaDeadline,
		resolutionNote:      resolutionNote,
		feedbackRating:      feedbackRating,
		feedbackComments:    feedbackComments,
		feedbackSubmittedAt: feedbackSubmittedAt,
		closureHash:         closureHash,
		closedAt:            closedAt,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (c *Complaint) ID() uint                         { return c.id }
func (c *Complaint) SID() string                      { return c.sid }
func (c *Complaint) SubmitterID() *uint               { return c.submitterID }
func (c *Complaint) Category() Category               { return c.category }
func (c *Complaint) Status() Status                   { return c.status }
func (c *Complaint) EscalationLevel() EscalationLevel { return c.escalationLevel }
func (c *Complaint) EscalationExhausted() bool        { return c.escalationExhausted }
func (c *Complaint) SLADeadline() time.Time           { return c.slaDeadline }
func (c *Complaint) ResolutionNote() *string          { return c.resolutionNote }
func (c *Complaint) FeedbackRating() *int             { return c.feedbackRating }
func (c *Complaint) FeedbackComments() *string        { return c.feedbackComments }
func (c *Complaint) FeedbackSubmittedAt() *time.Time  { return c.feedbackSubmittedAt }
func (c *Complaint) ClosureHash() *string             { return c.closureHash }
func (c *Complaint) ClosedAt() *time.Time             { return c.closedAt }
func (c *Complaint) Version() int                     { return c.version }
func (c *Complaint) CreatedAt() time.Time             { return c.createdAt }
func (c *Complaint) UpdatedAt() time.Time             { return c.updatedAt }

// PayloadEncrypted returns a copy of the encrypted payload.
func (c *Complaint) PayloadEncrypted() []byte {
	payload := make([]byte, len(c.payloadEncrypted))
	copy(payload, c.payloadEncrypted)
	return payload
}

// IsAnonymous reports whether the complaint was filed without an identity.
func (c *Complaint) IsAnonymous() bool { return c.submitterID == nil }

// SetID sets the complaint ID (only for persistence layer use).
func (c *Complaint) SetID(internalID uint) error {
	if c.id != 0 {
		return fmt.Errorf("complaint ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("complaint ID cannot be zero")
	}
	c.id = internalID
	return nil
}

// Submit files the draft and starts its SLA clock.
func (c *Complaint) Submit(slaDeadline time.Time) error {
	if !c.status.CanTransitionTo(StatusSubmitted) {
		return fmt.Errorf("cannot submit complaint in status %s", c.status)
	}
	if slaDeadline.IsZero() {
		return fmt.Errorf("SLA deadline is required")
	}
	c.status = StatusSubmitted
	c.slaDeadline = slaDeadline
	c.touch()
	return nil
}

// StartReview moves a submitted complaint to under_review.
func (c *Complaint) StartReview() error {
	return c.transitionTo(StatusUnderReview)
}

// StartProgress moves a reviewed complaint to in_progress.
func (c *Complaint) StartProgress() error {
	return c.transitionTo(StatusInProgress)
}

// Resolve records the officer's resolution note.
func (c *Complaint) Resolve(resolutionNote string) error {
	resolutionNote = strings.TrimSpace(resolutionNote)
	if resolutionNote == "" {
		return fmt.Errorf("resolution note is required")
	}
	if !c.status.CanTransitionTo(StatusResolved) {
		return fmt.Errorf("cannot resolve complaint in status %s", c.status)
	}
	c.status = StatusResolved
	c.resolutionNote = &resolutionNote
	c.touch()
	return nil
}

// Close finishes a resolved complaint. Closure requires submitter feedback
// and seals the outcome in the closure hash.
func (c *Complaint) Close(feedback Feedback) error {
	if !c.status.CanTransitionTo(StatusClosed) {
		return fmt.Errorf("cannot close complaint in status %s", c.status)
	}
	if c.resolutionNote == nil {
		return fmt.Errorf("cannot close complaint without a resolution note")
	}

	hash, err := ComputeClosureHash(c.category, *c.resolutionNote, feedback.Comments())
	if err != nil {
		return fmt.Errorf("failed to compute closure hash: %w", err)
	}

	now := time.Now()
	rating := feedback.Rating()
	comments := feedback.Comments()

	c.status = StatusClosed
	c.feedbackRating = &rating
	c.feedbackComments = &comments
	c.feedbackSubmittedAt = &now
	c.closureHash = &hash
	c.closedAt = &now
	c.touch()
	return nil
}

// Escalate bumps the complaint one administrative tier and resets its SLA
// deadline. The caller supplies the new deadline from the SLA table.
func (c *Complaint) Escalate(newDeadline time.Time) error {
	if !c.status.IsActive() {
		return fmt.Errorf("cannot escalate complaint in status %s", c.status)
	}
	if c.escalationExhausted {
		return fmt.Errorf("complaint escalation is exhausted")
	}

	next, err := c.escalationLevel.Next()
	if err != nil {
		return fmt.Errorf("cannot escalate: %w", err)
	}
	if newDeadline.IsZero() {
		return fmt.Errorf("SLA deadline is required")
	}

	c.escalationLevel = next
	c.status = StatusEscalated
	c.slaDeadline = newDeadline
	c.touch()
	return nil
}

// MarkEscalationExhausted records that the national tier has also breached
// its SLA. The scheduler stops bumping after this.
func (c *Complaint) MarkEscalationExhausted() error {
	if !c.escalationLevel.IsHighest() {
		return fmt.Errorf("escalation is not exhausted below the national level")
	}
	if c.escalationExhausted {
		return nil
	}
	c.escalationExhausted = true
	c.touch()
	return nil
}

// Reassign returns an escalated complaint to active handling.
func (c *Complaint) Reassign(target Status) error {
	if c.status != StatusEscalated {
		return fmt.Errorf("only escalated complaints can be reassigned, status is %s", c.status)
	}
	if !c.status.CanTransitionTo(target) {
		return fmt.Errorf("cannot reassign complaint from %s to %s", c.status, target)
	}
	c.status = target
	c.touch()
	return nil
}

// IsSLABreached reports whether the complaint is active and past deadline.
func (c *Complaint) IsSLABreached(now time.Time) bool {
	if !c.status.IsActive() || c.slaDeadline.IsZero() {
		return false
	}
	return now.After(c.slaDeadline)
}

// CanEscalate reports whether the scheduler may bump the complaint.
func (c *Complaint) CanEscalate() bool {
	return c.status.IsActive() && !c.escalationLevel.IsHighest() && !c.escalationExhausted
}

// CanBeViewedBy allows the non-anonymous submitter. Officer access is
// granted through role checks, not ownership.
func (c *Complaint) CanBeViewedBy(userID uint) bool {
	return c.submitterID != nil && *c.submitterID == userID
}

func (c *Complaint) transitionTo(target Status) error {
	if !c.status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition complaint from %s to %s", c.status, target)
	}
	c.status = target
	c.touch()
	return nil
}

func (c *Complaint) touch() {
	c.updatedAt = time.Now()
	c.version++
}

// ComputeClosureHash seals category, resolution note, and feedback into the
// canonical closure digest.
func ComputeClosureHash(category Category, resolutionNote, feedback string) (string, error) {
	return canonicaljson.HashHex(map[string]any{
		"category":        category.String(),
		"resolution_note": resolutionNote,
		"feedback":        feedback,
	})
}
