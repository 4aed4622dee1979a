package models

import "time"

// AuditEntryModel represents the database persistence model for the audit
// hash chain. Seq is assigned by the application under the chain head lock,
// never by the database.
type AuditEntryModel struct {
	Seq           uint64    `gorm:"primaryKey;autoIncrement:false"`
	ActorID       string    `gorm:"not null;size:64;index"`
	Action        string    `gorm:"not null;size:50;index"`
	EntityType    string    `gorm:"not null;size:50;index:idx_audit_entity,priority:1"`
	EntityID      string    `gorm:"size:64;index:idx_audit_entity,priority:2"`
	IP            string    `gorm:"size:45"`
	Device        string    `gorm:"size:64"`
	PayloadDigest string    `gorm:"size:64"`
	TS            time.Time `gorm:"not null;index"`
	PrevHash      string    `gorm:"not null;size:64"`
	EntryHash     string    `gorm:"uniqueIndex;not null;size:64"`
}

// TableName specifies the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}
