package responder

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/shopspring/decimal"

	"hdbackend/models"
	"hdbackend/services"
)

const (
	defaultModel     = "claude-3-5-sonnet-20241022"
	draftMaxTokens   = 1024
	draftSystemPrompt = "You are an IT helpdesk assistant. Draft a short, friendly reply to the " +
		"support request below. A human agent will review the draft before sending, so do not " +
		"promise actions. If information is missing, ask for it."
)

// Per-million-token pricing for the default model, used for the advisory cost estimate
var (
	inputCostPerMTok  = decimal.NewFromInt(3)
	outputCostPerMTok = decimal.NewFromInt(15)
	million           = decimal.NewFromInt(1_000_000)
)

type ResponderService struct {
	anthropicClient anthropic.Client
	messagesService services.MessagesService
	model           anthropic.Model
}

func NewResponderService(apiKey string, messagesService services.MessagesService) *ResponderService {
	return &ResponderService{
		anthropicClient: anthropic.NewClient(option.WithAPIKey(apiKey)),
		messagesService: messagesService,
		model:           anthropic.Model(defaultModel),
	}
}

// DraftReply generates a suggested reply for a stored message
func (s *ResponderService) DraftReply(ctx context.Context, messageID string) (*models.ResponseDraft, error) {
	log.Printf("📋 Starting to draft reply for message: %s", messageID)

	maybeMsg, err := s.messagesService.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	if !maybeMsg.IsPresent() {
		return nil, fmt.Errorf("message not found: %s", messageID)
	}
	message := maybeMsg.MustGet()

	prompt := buildDraftPrompt(message)

	response, err := s.anthropicClient.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: draftMaxTokens,
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: draftSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate draft: %w", err)
	}

	var draftText strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			draftText.WriteString(block.Text)
		}
	}

	draft := &models.ResponseDraft{
		MessageID:    messageID,
		DraftText:    draftText.String(),
		Model:        string(s.model),
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
		EstimatedCostUSD: estimateCost(
			response.Usage.InputTokens,
			response.Usage.OutputTokens,
		),
		CreatedAt: time.Now(),
	}

	log.Printf("📋 Completed successfully - drafted reply for message %s (%d output tokens)",
		messageID, draft.OutputTokens)
	return draft, nil
}

// buildDraftPrompt assembles the drafting prompt from the stored message and
// its ingestion-time context
func buildDraftPrompt(message *models.Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Support request in #%s from %s:\n%s\n\n", message.Channel, message.User, message.Text)
	fmt.Fprintf(&b, "Category: %s\nPriority: %s\n", message.Category, message.Priority)

	if message.Context != nil {
		if message.Context.UserTitle != "" || message.Context.UserDepartment != "" {
			fmt.Fprintf(&b, "Requester: %s, %s\n", message.Context.UserTitle, message.Context.UserDepartment)
		}
		if len(message.Context.ThreadHistory) > 0 {
			b.WriteString("Earlier messages in this thread:\n")
			for _, line := range message.Context.ThreadHistory {
				fmt.Fprintf(&b, "- %s\n", line)
			}
		}
	}

	return b.String()
}

// estimateCost converts token usage into an advisory USD figure
func estimateCost(inputTokens, outputTokens int64) decimal.Decimal {
	inputCost := decimal.NewFromInt(inputTokens).Mul(inputCostPerMTok).Div(million)
	outputCost := decimal.NewFromInt(outputTokens).Mul(outputCostPerMTok).Div(million)
	return inputCost.Add(outputCost).Round(6)
}
