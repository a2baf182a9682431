package domain

import "time"

// AuditLog records a committed mutation or a login attempt.
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	PersonID  *string                `db:"person_id" json:"person_id,omitempty"`
	Action    string                 `db:"action" json:"action"`
	TaskID    *string                `db:"task_id" json:"task_id,omitempty"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	UserAgent string                 `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit actions
const (
	AuditActionTaskCreate   = "task_create"
	AuditActionTaskUpdate   = "task_update"
	AuditActionTaskDelete   = "task_delete"
	AuditActionFeedbackAdd  = "feedback_add"
	AuditActionPersonCreate = "person_create"
	AuditActionLogin        = "login"
	AuditActionLoginFailed  = "login_failed"
)
