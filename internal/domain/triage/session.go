// Package triage implements deterministic red-flag triage and safe-language
// guidance. Rules run before any classifier, so a red-flag hit always forces
// an emergency disposition regardless of any other signal.
package triage

import (
	"fmt"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// Session is one completed triage evaluation owned by a single user.
// Sessions are immutable once created.
type Session struct {
	id           uint
	sid          string
	ownerID      uint
	symptomsText string
	age          int
	sex          string
	pregnancy    bool
	language     string
	category     Category
	redFlags     []string
	guidanceText string
	createdAt    time.Time
}

// NewSession records an evaluation result against its owner.
func NewSession(ownerID uint, input Input, result *Result) (*Session, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if result == nil {
		return nil, fmt.Errorf("result is required")
	}
	if !result.Category.IsValid() {
		return nil, fmt.Errorf("invalid triage category: %s", result.Category)
	}

	sid, err := id.NewTriageSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	flags := make([]string, len(result.RedFlags))
	copy(flags, result.RedFlags)

	return &Session{
		sid:          sid,
		ownerID:      ownerID,
		symptomsText: input.SymptomsText,
		age:          input.Age,
		sex:          input.Sex,
		pregnancy:    input.Pregnancy,
		language:     result.Language,
		category:     result.Category,
		redFlags:     flags,
		guidanceText: result.GuidanceText,
		createdAt:    time.Now(),
	}, nil
}

// ReconstructSession reconstructs a session from persistence.
func ReconstructSession(
	internalID uint,
	sid string,
	ownerID uint,
	symptomsText string,
	age int,
	sex string,
	pregnancy bool,
	lang string,
	category Category,
	redFlags []string,
	guidanceText string,
	createdAt time.Time,
) (*Session, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("session ID cannot be zero")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid triage category: %s", category)
	}
	if redFlags == nil {
		redFlags = []string{}
	}
	return &Session{
		id:           internalID,
		sid:          sid,
		ownerID:      ownerID,
		symptomsText: symptomsText,
		age:          age,
		sex:          sex,
		pregnancy:    pregnancy,
		language:     lang,
		category:     category,
		redFlags:     redFlags,
		guidanceText: guidanceText,
		createdAt:    createdAt,
	}, nil
}

func (s *Session) ID() uint             { return s.id }
func (s *Session) SID() string          { return s.sid }
func (s *Session) OwnerID() uint        { return s.ownerID }
func (s *Session) SymptomsText() string { return s.symptomsText }
func (s *Session) Age() int             { return s.age }
func (s *Session) Sex() string          { return s.sex }
func (s *Session) Pregnancy() bool      { return s.pregnancy }
func (s *Session) Language() string     { return s.language }
func (s *Session) Category() Category   { return s.category }
func (s *Session) GuidanceText() string { return s.guidanceText }
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// RedFlags returns a copy of the canonical flag names, in rulebook order.
func (s *Session) RedFlags() []string {
	flags := make([]string, len(s.redFlags))
	copy(flags, s.redFlags)
	return flags
}

// SetID sets the session ID (only for persistence layer use).
func (s *Session) SetID(internalID uint) error {
	if s.id != 0 {
		return fmt.Errorf("session ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("session ID cannot be zero")
	}
	s.id = internalID
	return nil
}

// CanBeViewedBy enforces owner-only reads. Clinicians in an active
// teleconsultation see sessions through the teleconsult flow, not here.
func (s *Session) CanBeViewedBy(userID uint) bool {
	return s.ownerID == userID
}
