package clients

import (
	"context"
)

// MockChatClient implements ChatClient for testing
type MockChatClient struct {
	MockAuthTest                func(ctx context.Context) (*AuthTestResponse, error)
	MockListConversations       func(ctx context.Context) ([]ConversationInfo, error)
	MockFetchHistory            func(ctx context.Context, conversationID, oldest string, limit int) ([]RawMessage, error)
	MockFetchThreadReplies      func(ctx context.Context, conversationID, rootID string, limit int) ([]RawMessage, error)
	MockResolveUser             func(ctx context.Context, userID string) (*ChatUser, error)
	MockResolveConversationInfo func(ctx context.Context, conversationID string) (*ConversationInfo, error)
}

// NewMockChatClient creates a new mock chat client
func NewMockChatClient() *MockChatClient {
	return &MockChatClient{}
}

// AuthTest implements ChatClient for testing
func (m *MockChatClient) AuthTest(ctx context.Context) (*AuthTestResponse, error) {
	if m.MockAuthTest != nil {
		return m.MockAuthTest(ctx)
	}

	// Default mock response for testing
	return &AuthTestResponse{
		UserID: "U123456789",
		TeamID: "T123456789",
	}, nil
}

// ListConversations implements ChatClient for testing
func (m *MockChatClient) ListConversations(ctx context.Context) ([]ConversationInfo, error) {
	if m.MockListConversations != nil {
		return m.MockListConversations(ctx)
	}
	return []ConversationInfo{}, nil
}

// FetchHistory implements ChatClient for testing
func (m *MockChatClient) FetchHistory(
	ctx context.Context,
	conversationID, oldest string,
	limit int,
) ([]RawMessage, error) {
	if m.MockFetchHistory != nil {
		return m.MockFetchHistory(ctx, conversationID, oldest, limit)
	}
	return []RawMessage{}, nil
}

// FetchThreadReplies implements ChatClient for testing
func (m *MockChatClient) FetchThreadReplies(
	ctx context.Context,
	conversationID, rootID string,
	limit int,
) ([]RawMessage, error) {
	if m.MockFetchThreadReplies != nil {
		return m.MockFetchThreadReplies(ctx, conversationID, rootID, limit)
	}
	return []RawMessage{}, nil
}

// ResolveUser implements ChatClient for testing
func (m *MockChatClient) ResolveUser(ctx context.Context, userID string) (*ChatUser, error) {
	if m.MockResolveUser != nil {
		return m.MockResolveUser(ctx, userID)
	}

	// Default mock response
	return &ChatUser{
		ID:   userID,
		Name: "testuser",
		Profile: ChatUserProfile{
			DisplayName: "Test User",
			RealName:    "Test User",
		},
	}, nil
}

// ResolveConversationInfo implements ChatClient for testing
func (m *MockChatClient) ResolveConversationInfo(
	ctx context.Context,
	conversationID string,
) (*ConversationInfo, error) {
	if m.MockResolveConversationInfo != nil {
		return m.MockResolveConversationInfo(ctx, conversationID)
	}

	// Default mock response
	return &ConversationInfo{
		ID:       conversationID,
		Name:     "test-channel",
		IsMember: true,
	}, nil
}
