package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResponseDraft is an AI-generated suggested reply for a stored message.
// Drafts are advisory - a human agent reviews and sends them.
type ResponseDraft struct {
	MessageID        string          `json:"message_id"`
	DraftText        string          `json:"draft_text"`
	Model            string          `json:"model"`
	InputTokens      int64           `json:"input_tokens"`
	OutputTokens     int64           `json:"output_tokens"`
	EstimatedCostUSD decimal.Decimal `json:"estimated_cost_usd"`
	CreatedAt        time.Time       `json:"created_at"`
}
