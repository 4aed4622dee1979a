// Package audit models the append-only hash chain bound to every write.
// Each entry's hash covers its content plus the previous entry's hash, so
// any retroactive edit breaks verification from that point forward.
package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahay-inc/sahay/internal/shared/canonicaljson"
)

// GenesisPrevHash is the prev_hash sentinel for the first chain entry.
const GenesisPrevHash = "0000000000000000000000000000000000000000000000000000000000000000"

// SystemActor identifies entries written by background jobs rather than a user.
const SystemActor = "system"

// Entry is one immutable audit chain record. Entries are never mutated;
// corrections are new entries referencing prior entity IDs.
type Entry struct {
	seq           uint64
	actorID       string
	action        string
	entityType    string
	entityID      string
	ip            string
	device        string
	payloadDigest string
	ts            time.Time
	prevHash      string
	entryHash     string
}

// NewEntry builds and seals the next chain entry. The caller supplies the
// next sequence number and the previous entry's hash under the same lock
// that serializes appends.
func NewEntry(
	seq uint64,
	prevHash string,
	actorID string,
	action string,
	entityType string,
	entityID string,
	ip string,
	device string,
	payloadDigest string,
	ts time.Time,
) (*Entry, error) {
	if seq == 0 {
		return nil, fmt.Errorf("sequence must start at 1")
	}
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}
	if entityType == "" {
		return nil, fmt.Errorf("entity type is required")
	}
	if prevHash == "" {
		return nil, fmt.Errorf("prev hash is required")
	}
	if seq == 1 && prevHash != GenesisPrevHash {
		return nil, fmt.Errorf("first entry must chain from the genesis sentinel")
	}
	if actorID == "" {
		actorID = SystemActor
	}

	e := &Entry{
		seq:           seq,
		actorID:       actorID,
		action:        action,
		entityType:    entityType,
		entityID:      entityID,
		ip:            ip,
		device:        device,
		payloadDigest: payloadDigest,
		ts:            ts.UTC(),
		prevHash:      prevHash,
	}

	hash, err := e.ComputeHash()
	if err != nil {
		return nil, err
	}
	e.entryHash = hash
	return e, nil
}

// ReconstructEntry reconstructs an entry from persistence without re-hashing.
func ReconstructEntry(
	seq uint64,
	actorID string,
	action string,
	entityType string,
	entityID string,
	ip string,
	device string,
	payloadDigest string,
	ts time.Time,
	prevHash string,
	entryHash string,
) (*Entry, error) {
	if seq == 0 {
		return nil, fmt.Errorf("sequence must start at 1")
	}
	return &Entry{
		seq:           seq,
		actorID:       actorID,
		action:        action,
		entityType:    entityType,
		entityID:      entityID,
		ip:            ip,
		device:        device,
		payloadDigest: payloadDigest,
		ts:            ts.UTC(),
		prevHash:      prevHash,
		entryHash:     entryHash,
	}, nil
}

func (e *Entry) Seq() uint64           { return e.seq }
func (e *Entry) ActorID() string       { return e.actorID }
func (e *Entry) Action() string        { return e.action }
func (e *Entry) EntityType() string    { return e.entityType }
func (e *Entry) EntityID() string      { return e.entityID }
func (e *Entry) IP() string            { return e.ip }
func (e *Entry) Device() string        { return e.device }
func (e *Entry) PayloadDigest() string { return e.payloadDigest }
func (e *Entry) Timestamp() time.Time  { return e.ts }
func (e *Entry) PrevHash() string      { return e.prevHash }
func (e *Entry) EntryHash() string     { return e.entryHash }

// ComputeHash derives the entry hash from the sealed fields. The timestamp
// enters the hash as epoch seconds; client metadata (ip, device) stays
// outside the hash so anonymous scrubbing never breaks the chain.
func (e *Entry) ComputeHash() (string, error) {
	return canonicaljson.HashHex(map[string]any{
		"seq":            e.seq,
		"actor_id":       e.actorID,
		"action":         e.action,
		"entity_type":    e.entityType,
		"entity_id":      e.entityID,
		"payload_digest": e.payloadDigest,
		"ts":             e.ts.Unix(),
		"prev_hash":      e.prevHash,
	})
}

// IsAnonymous reports whether the entry's client metadata was scrubbed.
func (e *Entry) IsAnonymous() bool {
	return e.ip == "" && e.device == ""
}

// DigestPayload hashes a domain payload for inclusion in an audit entry.
// A nil payload digests the empty object so the field is always present.
func DigestPayload(payload map[string]any) (string, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	return canonicaljson.HashHex(payload)
}

// ValidHash reports whether s looks like a lowercase hex SHA-256 digest.
func ValidHash(s string) bool {
	if len(s) != 64 {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'))
	}) == -1
}
