package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Key identifies one aggregation cell. Every dimension is already
// bucketed, so two payloads with the same key are indistinguishable.
type Key struct {
	EventType EventType
	Category  string
	EventTime time.Time
	GeoCell   string
	AgeBucket string
	Gender    string
}

// KeyFromPayload derives the aggregation cell a payload belongs to.
func KeyFromPayload(p Payload) Key {
	return Key{
		EventType: p.EventType,
		Category:  p.Category,
		EventTime: p.EventTime,
		GeoCell:   p.GeoCell,
		AgeBucket: p.AgeBucket,
		Gender:    p.Gender,
	}
}

// String renders the cell as a stable pipe-joined identifier.
func (k Key) String() string {
	return strings.Join([]string{
		string(k.EventType),
		k.Category,
		k.EventTime.UTC().Format(time.RFC3339),
		k.GeoCell,
		k.AgeBucket,
		k.Gender,
	}, "|")
}

// Aggregate is one counter cell. Rows below the k-anonymity floor exist in
// storage but are filtered out of every query result.
type Aggregate struct {
	id        uint
	key       Key
	count     int64
	createdAt time.Time
	updatedAt time.Time
}

// NewAggregate creates a counter cell for a key.
func NewAggregate(key Key, count int64) (*Aggregate, error) {
	if !key.EventType.IsValid() {
		return nil, fmt.Errorf("event type is not in the allow-list: %s", key.EventType)
	}
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive")
	}

	now := time.Now()
	return &Aggregate{
		key:       key,
		count:     count,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructAggregate reconstructs a counter cell from persistence.
func ReconstructAggregate(
	internalID uint,
	key Key,
	count int64,
	createdAt, updatedAt time.Time,
) (*Aggregate, error) {
	if internalID == 0 {
		return nil, fmt.Errorf("aggregate ID cannot be zero")
	}
	return &Aggregate{
		id:        internalID,
		key:       key,
		count:     count,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (a *Aggregate) ID() uint             { return a.id }
func (a *Aggregate) Key() Key             { return a.key }
func (a *Aggregate) Count() int64         { return a.count }
func (a *Aggregate) CreatedAt() time.Time { return a.createdAt }
func (a *Aggregate) UpdatedAt() time.Time { return a.updatedAt }

// AddCount folds another batch of occurrences into the cell.
func (a *Aggregate) AddCount(n int64) error {
	if n <= 0 {
		return fmt.Errorf("count must be positive")
	}
	a.count += n
	a.updatedAt = time.Now()
	return nil
}

// MeetsFloor reports whether the cell clears the k-anonymity threshold.
func (a *Aggregate) MeetsFloor(k int64) bool {
	return a.count >= k
}

// SetID sets the aggregate ID (only for persistence layer use).
func (a *Aggregate) SetID(internalID uint) error {
	if a.id != 0 {
		return fmt.Errorf("aggregate ID is already set")
	}
	if internalID == 0 {
		return fmt.Errorf("aggregate ID cannot be zero")
	}
	a.id = internalID
	return nil
}
