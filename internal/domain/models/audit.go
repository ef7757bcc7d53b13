package models

import "time"

// AuditAction enumerates the mutation kinds recorded in the audit trail.
type AuditAction string

const (
	ActionEntry       AuditAction = "ENTRY"
	ActionBulkEntry   AuditAction = "BULK_ENTRY"
	ActionExit        AuditAction = "EXIT"
	ActionPartialExit AuditAction = "PARTIAL_EXIT"
	ActionBulkExit    AuditAction = "BULK_EXIT"
)

// AuditRecord is an immutable append-only trace of one inventory mutation.
// The core only ever creates records; retention is an operational concern.
type AuditRecord struct {
	ID        string      `bson:"_id" json:"id"`
	Actor     string      `bson:"actor" json:"actor"`
	Action    AuditAction `bson:"action" json:"action"`
	Detail    string      `bson:"detail" json:"detail"`
	Location  string      `bson:"location" json:"location"`
	CreatedAt time.Time   `bson:"created_at" json:"createdAt"`
}

// AuditFilter narrows audit listings. Zero values mean "no constraint".
type AuditFilter struct {
	Actor  string
	Action AuditAction
	Since  time.Time
	Limit  int64
}
