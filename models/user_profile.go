package models

import (
	"time"
)

// UserProfile is a directory entry synced from the HR platform, keyed by the
// chat provider's user ID so ingested messages can be enriched with it.
type UserProfile struct {
	ID             string    `json:"id"               db:"id"`
	ProviderUserID string    `json:"provider_user_id" db:"provider_user_id"`
	DisplayName    string    `json:"display_name"     db:"display_name"`
	Email          string    `json:"email"            db:"email"`
	Title          string    `json:"title"            db:"title"`
	Department     string    `json:"department"       db:"department"`
	CreatedAt      time.Time `json:"created_at"       db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"       db:"updated_at"`
}
