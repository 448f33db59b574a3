package models

const (
	ResourceChannel = "channel"
	ResourceUser    = "user"
)

// AuditEntry represents one audit log row.
type AuditEntry struct {
	ID           int       `json:"id"`
	UserID       string    `json:"user_id"`
	Action       string    `json:"action"`        // create, update, delete, promote
	ResourceType string    `json:"resource_type"` // channel, user
	ResourceID   string    `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    Timestamp `json:"created_at"`
}
