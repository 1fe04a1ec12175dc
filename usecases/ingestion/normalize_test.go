package ingestion

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"hdbackend/clients"
)

func newTestUseCaseWithClient(client clients.ChatClient) *IngestionUseCase {
	return NewIngestionUseCase(client, nil, nil, nil, nil)
}

func TestNormalizeText(t *testing.T) {
	t.Run("ResolvesUserMentions", func(t *testing.T) {
		mockClient := clients.NewMockChatClient()
		mockClient.MockResolveUser = func(ctx context.Context, userID string) (*clients.ChatUser, error) {
			return &clients.ChatUser{
				ID:      userID,
				Profile: clients.ChatUserProfile{DisplayName: "Alice"},
			}, nil
		}
		uc := newTestUseCaseWithClient(mockClient)

		result := uc.normalizeText(context.Background(), "hello <@U123>", true)
		assert.Equal(t, "hello @Alice", result)
	})

	t.Run("FailedLookupKeepsOriginalToken", func(t *testing.T) {
		mockClient := clients.NewMockChatClient()
		mockClient.MockResolveUser = func(ctx context.Context, userID string) (*clients.ChatUser, error) {
			return nil, fmt.Errorf("user_not_found")
		}
		uc := newTestUseCaseWithClient(mockClient)

		result := uc.normalizeText(context.Background(), "ping <@U999> please", true)
		assert.Equal(t, "ping <@U999> please", result)
	})

	t.Run("MentionResolutionDisabledKeepsTokens", func(t *testing.T) {
		callCount := 0
		mockClient := clients.NewMockChatClient()
		mockClient.MockResolveUser = func(ctx context.Context, userID string) (*clients.ChatUser, error) {
			callCount++
			return &clients.ChatUser{ID: userID}, nil
		}
		uc := newTestUseCaseWithClient(mockClient)

		result := uc.normalizeText(context.Background(), "hello <@U123>", false)
		assert.Equal(t, "hello <@U123>", result)
		assert.Equal(t, 0, callCount)
	})

	t.Run("RepeatedMentionResolvedOnce", func(t *testing.T) {
		callCount := 0
		mockClient := clients.NewMockChatClient()
		mockClient.MockResolveUser = func(ctx context.Context, userID string) (*clients.ChatUser, error) {
			callCount++
			return &clients.ChatUser{
				ID:      userID,
				Profile: clients.ChatUserProfile{DisplayName: "Bob"},
			}, nil
		}
		uc := newTestUseCaseWithClient(mockClient)

		result := uc.normalizeText(context.Background(), "<@U1> and <@U1> again", true)
		assert.Equal(t, "@Bob and @Bob again", result)
		assert.Equal(t, 1, callCount)
	})

	t.Run("ChannelMentionWithName", func(t *testing.T) {
		uc := newTestUseCaseWithClient(clients.NewMockChatClient())

		result := uc.normalizeText(context.Background(), "see <#C123|it-support> for details", true)
		assert.Equal(t, "see #it-support for details", result)
	})

	t.Run("ChannelMentionWithoutName", func(t *testing.T) {
		uc := newTestUseCaseWithClient(clients.NewMockChatClient())

		result := uc.normalizeText(context.Background(), "see <#C123>", true)
		assert.Equal(t, "see #C123", result)
	})

	t.Run("BroadcastTokens", func(t *testing.T) {
		uc := newTestUseCaseWithClient(clients.NewMockChatClient())

		result := uc.normalizeText(context.Background(), "<!here> <!channel> <!everyone>", true)
		assert.Equal(t, "@here @channel @everyone", result)
	})

	t.Run("PlainTextPassesThroughUnchanged", func(t *testing.T) {
		uc := newTestUseCaseWithClient(clients.NewMockChatClient())

		text := "my laptop won't turn on"
		assert.Equal(t, text, uc.normalizeText(context.Background(), text, true))
	})
}
