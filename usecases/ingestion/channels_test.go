package ingestion

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"hdbackend/clients"
)

func TestChannelNameCache(t *testing.T) {
	t.Run("MemoizesSuccessfulLookups", func(t *testing.T) {
		callCount := 0
		mockClient := clients.NewMockChatClient()
		mockClient.MockResolveConversationInfo = func(ctx context.Context, conversationID string) (*clients.ConversationInfo, error) {
			callCount++
			return &clients.ConversationInfo{ID: conversationID, Name: "it-support"}, nil
		}

		cache := newChannelNameCache()
		assert.Equal(t, "it-support", cache.Resolve(context.Background(), mockClient, "C1"))
		assert.Equal(t, "it-support", cache.Resolve(context.Background(), mockClient, "C1"))
		assert.Equal(t, 1, callCount)
	})

	t.Run("FailedLookupNotCached", func(t *testing.T) {
		callCount := 0
		mockClient := clients.NewMockChatClient()
		mockClient.MockResolveConversationInfo = func(ctx context.Context, conversationID string) (*clients.ConversationInfo, error) {
			callCount++
			if callCount == 1 {
				return nil, fmt.Errorf("channel_not_found")
			}
			return &clients.ConversationInfo{ID: conversationID, Name: "helpdesk"}, nil
		}

		cache := newChannelNameCache()
		assert.Equal(t, "", cache.Resolve(context.Background(), mockClient, "C2"))
		assert.Equal(t, "helpdesk", cache.Resolve(context.Background(), mockClient, "C2"))
		assert.Equal(t, 2, callCount)
	})

	t.Run("EmptyNameNotCached", func(t *testing.T) {
		callCount := 0
		mockClient := clients.NewMockChatClient()
		mockClient.MockResolveConversationInfo = func(ctx context.Context, conversationID string) (*clients.ConversationInfo, error) {
			callCount++
			return &clients.ConversationInfo{ID: conversationID, Name: ""}, nil
		}

		cache := newChannelNameCache()
		assert.Equal(t, "", cache.Resolve(context.Background(), mockClient, "C3"))
		assert.Equal(t, "", cache.Resolve(context.Background(), mockClient, "C3"))
		assert.Equal(t, 2, callCount)
	})

	t.Run("DistinctChannelsCachedSeparately", func(t *testing.T) {
		mockClient := clients.NewMockChatClient()
		mockClient.MockResolveConversationInfo = func(ctx context.Context, conversationID string) (*clients.ConversationInfo, error) {
			return &clients.ConversationInfo{ID: conversationID, Name: "name-" + conversationID}, nil
		}

		cache := newChannelNameCache()
		assert.Equal(t, "name-C1", cache.Resolve(context.Background(), mockClient, "C1"))
		assert.Equal(t, "name-C2", cache.Resolve(context.Background(), mockClient, "C2"))
	})
}
