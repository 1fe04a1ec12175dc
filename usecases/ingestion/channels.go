package ingestion

import (
	"context"
	"log"
	"sync"

	"hdbackend/clients"
)

// channelNameCache memoizes channel ID → display name lookups for the process
// lifetime. Entries are never evicted or invalidated; a channel renamed
// mid-session keeps its stale name until restart. Failed lookups are not
// cached so a later tick can retry.
type channelNameCache struct {
	mu    sync.Mutex
	names map[string]string
}

func newChannelNameCache() *channelNameCache {
	return &channelNameCache{names: make(map[string]string)}
}

// Resolve returns the display name for a channel, or "" when it cannot be
// resolved
func (c *channelNameCache) Resolve(ctx context.Context, client clients.ChatClient, channelID string) string {
	c.mu.Lock()
	name, ok := c.names[channelID]
	c.mu.Unlock()
	if ok {
		return name
	}

	info, err := client.ResolveConversationInfo(ctx, channelID)
	if err != nil {
		log.Printf("⚠️ Failed to resolve channel name for %s: %v", channelID, err)
		return ""
	}
	if info.Name == "" {
		return ""
	}

	c.mu.Lock()
	c.names[channelID] = info.Name
	c.mu.Unlock()
	return info.Name
}
