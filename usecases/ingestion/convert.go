package ingestion

import (
	"context"
	"log"

	"hdbackend/clients"
	"hdbackend/models"
)

// convertRawMessage builds a fully-formed message record from a raw provider
// message. Returns false when the raw message is malformed (missing text or
// author) - those are skipped silently, not treated as errors.
func (s *IngestionUseCase) convertRawMessage(
	ctx context.Context,
	conv models.Conversation,
	raw clients.RawMessage,
	settings *models.WorkspaceSettings,
	rules []models.CategoryRule,
	threadHistory []string,
) (*models.Message, bool) {
	if raw.Text == "" || raw.User == "" {
		return nil, false
	}

	userName := raw.User
	var msgContext *models.MessageContext

	user, err := s.chatClient.ResolveUser(ctx, raw.User)
	if err != nil {
		// degrade to the raw identifier - resolution never blocks processing
		log.Printf("⚠️ Failed to resolve user %s: %v", raw.User, err)
	} else {
		userName = user.DisplayName()
		msgContext = &models.MessageContext{
			UserDisplayName: user.DisplayName(),
			UserEmail:       user.Profile.Email,
			UserTitle:       user.Profile.Title,
		}
	}

	if s.directoryService != nil {
		maybeProfile, dirErr := s.directoryService.GetUserProfileByProviderID(ctx, raw.User)
		if dirErr != nil {
			log.Printf("⚠️ Failed to load directory profile for %s: %v", raw.User, dirErr)
		} else if maybeProfile.IsPresent() {
			profile := maybeProfile.MustGet()
			if msgContext == nil {
				msgContext = &models.MessageContext{}
			}
			fillFromProfile(msgContext, profile)
		}
	}

	if len(threadHistory) > 0 {
		if msgContext == nil {
			msgContext = &models.MessageContext{}
		}
		msgContext.ThreadHistory = threadHistory
	}

	text := s.normalizeText(ctx, raw.Text, settings.EnableMentions)
	category := classifyCategory(text, rules)
	priority := classifyPriority(text, category)

	message := &models.Message{
		ID:         raw.TS,
		Channel:    conv.Name,
		User:       userName,
		Text:       text,
		Timestamp:  raw.TS,
		ReplyCount: raw.ReplyCount,
		Type:       models.MessageTypeForKind(conv.Kind),
		Priority:   priority,
		Category:   category,
		Status:     models.MessageStatusPending,
		Context:    msgContext,
	}

	if raw.IsThreadReply() {
		rootID := raw.ThreadTS
		message.ThreadRootID = &rootID
	}

	return message, true
}

// fillFromProfile supplements context fields the chat API did not provide
func fillFromProfile(msgContext *models.MessageContext, profile *models.UserProfile) {
	if msgContext.UserDisplayName == "" {
		msgContext.UserDisplayName = profile.DisplayName
	}
	if msgContext.UserEmail == "" {
		msgContext.UserEmail = profile.Email
	}
	if msgContext.UserTitle == "" {
		msgContext.UserTitle = profile.Title
	}
	msgContext.UserDepartment = profile.Department
}
