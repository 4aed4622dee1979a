package models

import "time"

// ComplaintModel represents the database persistence model for complaints.
// The payload is sealed client-side territory: stored encrypted at rest and
// never indexed.
type ComplaintModel struct {
	ID                  uint      `gorm:"primarykey"`
	SID                 string    `gorm:"uniqueIndex;not null;size:32"`
	SubmitterID         *uint     `gorm:"index"`
	Category            string    `gorm:"not null;size:30;index"`
	PayloadEncrypted    []byte    `gorm:"type:blob"`
	Status              string    `gorm:"not null;size:20;index:idx_complaint_sla,priority:1"`
	EscalationLevel     string    `gorm:"not null;size:10"`
	EscalationExhausted bool      `gorm:"not null;default:false"`
	SLADeadline         time.Time `gorm:"index:idx_complaint_sla,priority:2"`
	ResolutionNote      *string   `gorm:"type:text"`
	FeedbackRating      *int
	FeedbackComments    *string `gorm:"type:text"`
	FeedbackSubmittedAt *time.Time
	ClosureHash         *string `gorm:"size:64"`
	ClosedAt            *time.Time
	Version             int `gorm:"not null;default:1"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for GORM
func (ComplaintModel) TableName() string {
	return "complaints"
}

// ComplaintStatusHistoryModel represents the database persistence model for
// complaint status transitions. Auto-escalations carry a NULL actor.
type ComplaintStatusHistoryModel struct {
	ID               uint   `gorm:"primarykey"`
	ComplaintID      uint   `gorm:"not null;index"`
	OldStatus        string `gorm:"not null;size:20"`
	NewStatus        string `gorm:"not null;size:20"`
	OldLevel         string `gorm:"not null;size:10"`
	NewLevel         string `gorm:"not null;size:10"`
	ChangedByUserID  *uint
	Reason           string `gorm:"size:500"`
	IsAutoEscalation bool   `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

// TableName specifies the table name for GORM
func (ComplaintStatusHistoryModel) TableName() string {
	return "complaint_status_history"
}

// EvidenceModel represents the database persistence model for evidence
// attachment metadata. Object bytes live in the evidence store, not here.
type EvidenceModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"uniqueIndex;not null;size:32"`
	ComplaintID uint   `gorm:"not null;index"`
	ObjectKey   string `gorm:"not null;size:255"`
	ContentHash string `gorm:"not null;size:64;index"`
	ContentType string `gorm:"not null;size:100"`
	SizeBytes   int64  `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (EvidenceModel) TableName() string {
	return "complaint_evidence"
}

// SLARuleModel represents the database persistence model for per-category,
// per-level SLA durations.
type SLARuleModel struct {
	ID             uint   `gorm:"primarykey"`
	Category       string `gorm:"not null;size:30;uniqueIndex:idx_sla_rule"`
	Level          string `gorm:"not null;size:10;uniqueIndex:idx_sla_rule"`
	TimeLimitHours int    `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (SLARuleModel) TableName() string {
	return "sla_rules"
}
