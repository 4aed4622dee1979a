package complaint

import (
	"context"
	"time"
)

// ListFilter defines filtering options for listing complaints.
type ListFilter struct {
	SubmitterID     *uint
	Category        *Category
	Status          *Status
	EscalationLevel *EscalationLevel
	Page            int
	PageSize        int
}

// Repository defines the interface for complaint persistence.
type Repository interface {
	Create(ctx context.Context, complaint *Complaint) error
	GetByID(ctx context.Context, id uint) (*Complaint, error)
	GetBySID(ctx context.Context, sid string) (*Complaint, error)
	Update(ctx context.Context, complaint *Complaint) error
	List(ctx context.Context, filter ListFilter) ([]*Complaint, int64, error)
	// ListSLABreached returns active complaints whose deadline is before now.
	ListSLABreached(ctx context.Context, now time.Time) ([]*Complaint, error)
	// AnonymizeByUser severs submitter links for erasure; anonymous content
	// is retained for officers.
	AnonymizeByUser(ctx context.Context, submitterID uint) error
}

// SLARuleRepository defines the interface for SLA rule persistence.
type SLARuleRepository interface {
	Create(ctx context.Context, rule *SLARule) error
	GetByCategoryAndLevel(ctx context.Context, category Category, level EscalationLevel) (*SLARule, error)
	Update(ctx context.Context, rule *SLARule) error
	List(ctx context.Context, category *Category) ([]*SLARule, error)
}

// StatusHistoryRepository defines the interface for status history persistence.
type StatusHistoryRepository interface {
	Create(ctx context.Context, change *StatusChange) error
	ListByComplaint(ctx context.Context, complaintID uint) ([]*StatusChange, error)
}

// EvidenceRepository defines the interface for evidence metadata persistence.
type EvidenceRepository interface {
	Create(ctx context.Context, evidence *Evidence) error
	GetBySID(ctx context.Context, sid string) (*Evidence, error)
	ListByComplaint(ctx context.Context, complaintID uint) ([]*Evidence, error)
}
