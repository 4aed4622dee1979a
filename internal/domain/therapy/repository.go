package therapy

import "context"

// ModuleListFilter defines filtering options for listing modules. The age
// filter matches modules whose range covers the given age in months.
type ModuleListFilter struct {
	ModuleType *string
	AgeMonths  *int
	Page       int
	PageSize   int
}

// ModuleRepository defines the interface for therapy module persistence.
type ModuleRepository interface {
	Create(ctx context.Context, module *Module) error
	GetBySID(ctx context.Context, sid string) (*Module, error)
	List(ctx context.Context, filter ModuleListFilter) ([]*Module, int64, error)
}

// PackRepository defines the interface for pack metadata persistence.
type PackRepository interface {
	Create(ctx context.Context, pack *Pack) error
	GetBySID(ctx context.Context, sid string) (*Pack, error)
}
