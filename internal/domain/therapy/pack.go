package therapy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/id"
)

// PackStore persists pack archives, keyed and checksummed by content hash.
type PackStore interface {
	Put(ctx context.Context, content []byte) (objectKey string, contentHash string, err error)
	Get(ctx context.Context, objectKey string) ([]byte, error)
}

// Pack is one built archive of a module at a version. The checksum is the
// SHA-256 of the archive bytes and doubles as the storage object key.
type Pack struct {
	id          uint
	sid         string
	moduleID    uint
	title       string
	description string
	version     string
	checksum    string
	objectKey   string
	createdAt   time.Time
}

// NewPack records a stored archive against its source module.
func NewPack(module *Module, version, checksum, objectKey string) (*Pack, error) {
	if module == nil || module.ID() == 0 {
		return nil, fmt.Errorf("source module is required")
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, fmt.Errorf("version is required")
	}
	if checksum == "" || objectKey == "" {
		return nil, fmt.Errorf("stored archive reference is required")
	}

	sid, err := id.NewTherapyPackID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pack ID: %w", err)
	}

	return &Pack{
		sid:         sid,
		moduleID:    module.ID(),
		title:       fmt.Sprintf("%s v%s", module.Title(), version),
		description: module.Description(),
		version:     version,
		checksum:    checksum,
		objectKey:   objectKey,
		createdAt:   time.Now(),
	}, nil
}

// ReconstructPack reconstructs a pack from persistence.
func ReconstructPack(
	internalID uint,
	sid string,
	moduleID uint,
	title string,
	description string,
	version string,
	checksum string,
	objectKey string,
	createdAt time.Time,
) (*Pack, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("pack ID cannot be zero")
	}
	return &Pack{
		id:          internalID,
		sid:         sid,
		moduleID:    moduleID,
		title:       title,
		description: description,
		version:     version,
		checksum:    checksum,
		objectKey:   objectKey,
		createdAt:   createdAt,
	}, nil
}

func (p *Pack) ID() uint             { return p.id }
func (p *Pack) SID() string          { return p.sid }
func (p *Pack) ModuleID() uint       { return p.moduleID }
func (p *Pack) Title() string        { return p.title }
func (p *Pack) Description() string  { return p.description }
func (p *Pack) Version() string      { return p.version }
func (p *Pack) Checksum() string     { return p.checksum }
func (p *Pack) ObjectKey() string    { return p.objectKey }
func (p *Pack) CreatedAt() time.Time { return p.createdAt }

// SetID sets the internal database ID after persistence.
func (p *Pack) SetID(internalID uint) error {
	if p.id != 0 {
		return fmt.Errorf("pack ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("pack ID cannot be zero")
	}
	p.id = internalID
	return nil
}
