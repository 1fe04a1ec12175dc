package clients

import (
	"context"
)

// ChatClient is the provider-agnostic surface the ingestion pipeline consumes.
// Implementations exist for Slack and Discord.
type ChatClient interface {
	// AuthTest verifies the credentials and returns the bot identity
	AuthTest(ctx context.Context) (*AuthTestResponse, error)

	// ListConversations returns all conversations visible to the bot
	ListConversations(ctx context.Context) ([]ConversationInfo, error)

	// FetchHistory returns messages with timestamp > oldest, newest-first as
	// the provider delivers them, capped at limit
	FetchHistory(ctx context.Context, conversationID, oldest string, limit int) ([]RawMessage, error)

	// FetchThreadReplies returns a thread's messages. The first element is the
	// thread root itself and must be skipped by callers.
	FetchThreadReplies(ctx context.Context, conversationID, rootID string, limit int) ([]RawMessage, error)

	// ResolveUser looks up a user's profile by provider user ID
	ResolveUser(ctx context.Context, userID string) (*ChatUser, error)

	// ResolveConversationInfo looks up a single conversation by ID
	ResolveConversationInfo(ctx context.Context, conversationID string) (*ConversationInfo, error)
}

// DirectoryClient is the HR-platform boundary used for full user-directory syncs
type DirectoryClient interface {
	// ListUsersPage returns one page of directory users and whether more pages remain
	ListUsersPage(ctx context.Context, page, pageSize int) ([]DirectoryUser, bool, error)
}
