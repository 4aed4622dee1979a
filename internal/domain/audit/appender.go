package audit

import (
	"context"
	"time"
)

// Record describes one auditable action before it is sealed onto the chain.
// Payload carries the domain fields worth digesting; only its hash is stored.
type Record struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	IP         string
	Device     string
	Payload    map[string]any
}

// Appender seals records onto the chain. Append must run inside the same
// transaction as the domain write it records; the Head row lock then
// serializes concurrent appends until commit.
type Appender struct {
	entries Repository
}

func NewAppender(entries Repository) *Appender {
	return &Appender{entries: entries}
}

// Append allocates the next sequence under the chain head lock, seals the
// entry, and inserts it.
func (a *Appender) Append(ctx context.Context, rec Record) (*Entry, error) {
	digest, err := DigestPayload(rec.Payload)
	if err != nil {
		return nil, err
	}

	seq, prevHash, err := a.entries.Head(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := NewEntry(
		seq+1,
		prevHash,
		rec.ActorID,
		rec.Action,
		rec.EntityType,
		rec.EntityID,
		rec.IP,
		rec.Device,
		digest,
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := a.entries.Append(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
