package ingestion

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

var (
	// user mentions in the format <@U123456> (Slack) or <@!123456> (Discord)
	userMentionRegex = regexp.MustCompile(`<@!?([A-Z0-9]+)>`)
	// channel mentions in the format <#C123456|channel-name> or <#C123456>
	channelMentionRegex = regexp.MustCompile(`<#([A-Z0-9]+)(?:\|([^>]*))?>`)

	broadcastReplacer = strings.NewReplacer(
		"<!here>", "@here",
		"<!channel>", "@channel",
		"<!everyone>", "@everyone",
	)
)

// normalizeText rewrites raw message text into display form: user mentions
// become @DisplayName, channel mentions become #name, broadcast tokens become
// their plain @-prefixed equivalents. Text containing none of these tokens
// passes through unchanged.
func (s *IngestionUseCase) normalizeText(ctx context.Context, text string, resolveMentions bool) string {
	result := text
	if resolveMentions {
		result = s.resolveUserMentions(ctx, result)
	}

	result = channelMentionRegex.ReplaceAllStringFunc(result, func(match string) string {
		submatches := channelMentionRegex.FindStringSubmatch(match)
		if len(submatches) > 2 && submatches[2] != "" {
			return "#" + submatches[2]
		}
		return "#" + submatches[1]
	})

	return broadcastReplacer.Replace(result)
}

// resolveUserMentions resolves user mention tokens to display names via the
// chat API. A failed lookup keeps the original token - resolution never
// blocks message processing.
func (s *IngestionUseCase) resolveUserMentions(ctx context.Context, message string) string {
	matches := userMentionRegex.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return message
	}

	// cache per message to avoid duplicate API calls for repeated mentions
	userCache := make(map[string]string)

	for _, match := range matches {
		userID := match[1]
		if _, exists := userCache[userID]; exists {
			continue
		}

		user, err := s.chatClient.ResolveUser(ctx, userID)
		if err != nil {
			log.Printf("⚠️ Failed to resolve user mention %s: %v", userID, err)
			userCache[userID] = match[0]
			continue
		}

		userCache[userID] = fmt.Sprintf("@%s", user.DisplayName())
	}

	return userMentionRegex.ReplaceAllStringFunc(message, func(match string) string {
		submatches := userMentionRegex.FindStringSubmatch(match)
		if len(submatches) > 1 {
			if resolved, exists := userCache[submatches[1]]; exists {
				return resolved
			}
		}
		return match
	})
}
