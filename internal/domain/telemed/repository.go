package telemed

import "context"

// ListFilter defines filtering options for listing tele requests.
type ListFilter struct {
	CitizenID   *uint
	ClinicianID *uint
	Status      *Status
	Page        int
	PageSize    int
}

// Repository defines the interface for tele request persistence.
type Repository interface {
	Create(ctx context.Context, request *TeleRequest) error
	GetBySID(ctx context.Context, sid string) (*TeleRequest, error)
	Update(ctx context.Context, request *TeleRequest) error
	List(ctx context.Context, filter ListFilter) ([]*TeleRequest, int64, error)
	DeleteByUser(ctx context.Context, citizenID uint) error
}

// PrescriptionRepository defines the interface for prescription persistence.
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *Prescription) error
	GetBySID(ctx context.Context, sid string) (*Prescription, error)
	ListByCitizen(ctx context.Context, citizenID uint) ([]*Prescription, error)
	ListByTeleRequest(ctx context.Context, teleRequestID uint) ([]*Prescription, error)
	DeleteByUser(ctx context.Context, citizenID uint) error
}
