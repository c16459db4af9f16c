package domain

import "time"

// AuditRecord captures who did what, when, and with what outcome. UserID and
// UserEmail are empty for unauthenticated requests.
type AuditRecord struct {
	UserID     string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
	UserEmail  string    `json:"user_email,omitempty" bson:"user_email,omitempty"`
	Action     string    `json:"action" bson:"action"`
	Resource   string    `json:"resource" bson:"resource"`
	ResourceID string    `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	Method     string    `json:"method" bson:"method"`
	Path       string    `json:"path" bson:"path"`
	IP         string    `json:"ip" bson:"ip"`
	UserAgent  string    `json:"user_agent" bson:"user_agent"`
	Success    bool      `json:"success" bson:"success"`
	Message    string    `json:"message,omitempty" bson:"message,omitempty"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
