package models

// Channel is a directory entry for a live stream. Inactive channels are soft-deleted.
type Channel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Logo        *string   `json:"logo"` // base64-encoded image
	URLs        []string  `json:"urls"`
	Category    *string   `json:"category"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// ChannelFields are the caller-supplied, replaceable parts of a channel.
type ChannelFields struct {
	Name        string
	Description string
	Logo        *string
	URLs        []string
	Category    *string
}

// ChannelFilter narrows a channel listing. Empty values mean "no filter".
type ChannelFilter struct {
	Category string
	Search   string
	Owner    string
}
