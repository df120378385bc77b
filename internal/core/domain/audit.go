package domain

import "time"

// AuditAction identifies the kind of security-relevant operation recorded in
// the audit trail.
type AuditAction string

const (
	AuditLogin        AuditAction = "login"
	AuditLoginFailed  AuditAction = "login_failed"
	AuditRegister     AuditAction = "register"
	AuditRefresh      AuditAction = "refresh"
	AuditLogout       AuditAction = "logout"
	AuditRoleChange   AuditAction = "role_change"
	AuditUserDisabled AuditAction = "user_disabled"
	AuditUserEnabled  AuditAction = "user_enabled"
)

// AuditEntry is a single record in the audit trail. Entries are immutable
// once written.
type AuditEntry struct {
	UserID    string      `bson:"user_id"`
	Username  string      `bson:"username,omitempty"`
	Action    AuditAction `bson:"action"`
	Detail    string      `bson:"detail,omitempty"`
	Timestamp time.Time   `bson:"timestamp"`
}
