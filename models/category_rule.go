package models

import (
	"time"

	"github.com/lib/pq"
)

// DefaultCategory is assigned when no rule keyword matches the message text
const DefaultCategory = "general"

// CategoryRule is a configurable classification rule: a category tag plus the
// keywords that vote for it. Rule sets are swappable at runtime - the poller
// reads the active set at the top of every tick.
type CategoryRule struct {
	ID          string         `json:"id"           db:"id"`
	Category    string         `json:"category"     db:"category"`
	DisplayName string         `json:"display_name" db:"display_name"`
	Keywords    pq.StringArray `json:"keywords"     db:"keywords"`
	Position    int            `json:"position"     db:"position"`
	CreatedAt   time.Time      `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"   db:"updated_at"`
}

// DefaultCategoryRules is the seed rule set installed on first start
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{
			Category:    "hardware",
			DisplayName: "Hardware Issue",
			Keywords:    pq.StringArray{"laptop", "screen", "keyboard", "mouse", "monitor", "battery", "charger", "broken", "cracked"},
			Position:    0,
		},
		{
			Category:    "network",
			DisplayName: "VPN / Network Support",
			Keywords:    pq.StringArray{"vpn", "wifi", "network", "internet", "connection", "dns", "proxy"},
			Position:    1,
		},
		{
			Category:    "access",
			DisplayName: "Access Request",
			Keywords:    pq.StringArray{"access", "permission", "locked out", "account", "login", "sso"},
			Position:    2,
		},
		{
			Category:    "software",
			DisplayName: "Software Installation",
			Keywords:    pq.StringArray{"install", "software", "license", "update", "upgrade", "application"},
			Position:    3,
		},
		{
			Category:    "password",
			DisplayName: "Password Reset",
			Keywords:    pq.StringArray{"password", "reset", "forgot", "2fa", "mfa"},
			Position:    4,
		},
		{
			Category:    DefaultCategory,
			DisplayName: "General Question",
			Keywords:    pq.StringArray{},
			Position:    5,
		},
	}
}
