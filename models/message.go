package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MessagePriority is the triage priority assigned to a message at ingestion time
type MessagePriority string

const (
	MessagePriorityLow    MessagePriority = "LOW"
	MessagePriorityMedium MessagePriority = "MEDIUM"
	MessagePriorityHigh   MessagePriority = "HIGH"
	MessagePriorityUrgent MessagePriority = "URGENT"
)

// MessageStatus is the lifecycle tag of a stored message. Ingestion always
// creates messages as PENDING; later transitions are driven by the operator.
type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "PENDING"
	MessageStatusResponded MessageStatus = "RESPONDED"
	MessageStatusDismissed MessageStatus = "DISMISSED"
)

// MessageType identifies the kind of conversation a message came from
type MessageType string

const (
	MessageTypeDirect  MessageType = "direct"
	MessageTypeGroup   MessageType = "group"
	MessageTypeChannel MessageType = "channel"
)

// MessageContext carries optional enrichment data attached at ingestion time:
// the author's directory profile and, for thread replies, abbreviated thread history.
type MessageContext struct {
	UserDisplayName string   `json:"user_display_name,omitempty"`
	UserEmail       string   `json:"user_email,omitempty"`
	UserTitle       string   `json:"user_title,omitempty"`
	UserDepartment  string   `json:"user_department,omitempty"`
	ThreadHistory   []string `json:"thread_history,omitempty"`
}

// Value implements driver.Valuer so the context can be stored as JSONB
func (c MessageContext) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB columns
func (c *MessageContext) Scan(value any) error {
	if value == nil {
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for MessageContext: %T", value)
	}
	return json.Unmarshal(data, c)
}

// Message is the unit the ingestion pipeline produces. The ID is the
// provider-assigned timestamp string and doubles as the storage idempotency key.
type Message struct {
	ID           string          `json:"id"                       db:"id"`
	Channel      string          `json:"channel"                  db:"channel"`
	User         string          `json:"user"                     db:"user_name"`
	Text         string          `json:"text"                     db:"text_content"`
	Timestamp    string          `json:"timestamp"                db:"ts"`
	ThreadRootID *string         `json:"thread_root_id,omitempty" db:"thread_root_id"`
	ReplyCount   int             `json:"reply_count"              db:"reply_count"`
	Type         MessageType     `json:"type"                     db:"message_type"`
	Priority     MessagePriority `json:"priority"                 db:"priority"`
	Category     string          `json:"category"                 db:"category"`
	Status       MessageStatus   `json:"status"                   db:"status"`
	Context      *MessageContext `json:"context,omitempty"        db:"context"`
	CreatedAt    time.Time       `json:"created_at"               db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"               db:"updated_at"`
}
