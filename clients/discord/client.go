package discord

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"hdbackend/clients"
)

// discordEpochMs is the Discord snowflake epoch (2015-01-01T00:00:00Z) in milliseconds
const discordEpochMs = 1420070400000

// DiscordClient implements the clients.ChatClient interface for a single guild
// using the bwmarrin/discordgo SDK. Discord addresses messages by snowflake ID
// rather than timestamp, so the watermark is translated to a snowflake lower
// bound when fetching history.
type DiscordClient struct {
	session *discordgo.Session
	guildID string
}

// NewDiscordClient creates a new Discord client scoped to one guild
func NewDiscordClient(botToken, guildID string) (clients.ChatClient, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &DiscordClient{
		session: session,
		guildID: guildID,
	}, nil
}

// AuthTest verifies the bot token and returns the bot identity
func (c *DiscordClient) AuthTest(ctx context.Context) (*clients.AuthTestResponse, error) {
	user, err := c.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return &clients.AuthTestResponse{
		UserID: user.ID,
		TeamID: c.guildID,
	}, nil
}

// ListConversations lists the guild's text channels
func (c *DiscordClient) ListConversations(ctx context.Context) ([]clients.ConversationInfo, error) {
	channels, err := c.session.GuildChannels(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	conversations := make([]clients.ConversationInfo, 0, len(channels))
	for _, channel := range channels {
		if channel.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		conversations = append(conversations, clients.ConversationInfo{
			ID:   channel.ID,
			Name: channel.Name,
			// The bot sees exactly the channels it has access to
			IsMember: true,
		})
	}
	return conversations, nil
}

// FetchHistory fetches messages newer than the oldest timestamp, newest-first
// as Discord returns them
func (c *DiscordClient) FetchHistory(
	ctx context.Context,
	conversationID, oldest string,
	limit int,
) ([]clients.RawMessage, error) {
	afterID, err := snowflakeAfter(oldest)
	if err != nil {
		return nil, fmt.Errorf("invalid oldest timestamp %q: %w", oldest, err)
	}

	messages, err := c.session.ChannelMessages(
		conversationID, limit, "", afterID, "",
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return nil, err
	}

	raw := make([]clients.RawMessage, 0, len(messages))
	for _, message := range messages {
		raw = append(raw, convertMessage(message))
	}
	return raw, nil
}

// FetchThreadReplies fetches a thread's messages. A Discord thread channel
// shares its ID with the root message, so the root is fetched separately and
// prepended to honor the "first element is the root" contract.
func (c *DiscordClient) FetchThreadReplies(
	ctx context.Context,
	conversationID, rootID string,
	limit int,
) ([]clients.RawMessage, error) {
	root, err := c.session.ChannelMessage(conversationID, rootID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	replies, err := c.session.ChannelMessages(rootID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	raw := make([]clients.RawMessage, 0, len(replies)+1)
	raw = append(raw, convertMessage(root))
	// Discord returns newest-first; replies are emitted oldest-first after the root
	for i := len(replies) - 1; i >= 0; i-- {
		reply := convertMessage(replies[i])
		reply.ThreadTS = root.ID
		raw = append(raw, reply)
	}
	return raw, nil
}

// ResolveUser looks up a guild member, falling back to the global user profile
func (c *DiscordClient) ResolveUser(ctx context.Context, userID string) (*clients.ChatUser, error) {
	member, err := c.session.GuildMember(c.guildID, userID, discordgo.WithContext(ctx))
	if err == nil && member.User != nil {
		displayName := member.Nick
		if displayName == "" {
			displayName = member.User.GlobalName
		}
		return &clients.ChatUser{
			ID:   member.User.ID,
			Name: member.User.Username,
			Profile: clients.ChatUserProfile{
				DisplayName: displayName,
				RealName:    member.User.GlobalName,
			},
		}, nil
	}

	user, err := c.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return &clients.ChatUser{
		ID:   user.ID,
		Name: user.Username,
		Profile: clients.ChatUserProfile{
			DisplayName: user.GlobalName,
			RealName:    user.GlobalName,
		},
	}, nil
}

// ResolveConversationInfo looks up a single channel by ID
func (c *DiscordClient) ResolveConversationInfo(
	ctx context.Context,
	conversationID string,
) (*clients.ConversationInfo, error) {
	channel, err := c.session.Channel(conversationID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	return &clients.ConversationInfo{
		ID:       channel.ID,
		Name:     channel.Name,
		IsIM:     channel.Type == discordgo.ChannelTypeDM,
		IsGroup:  channel.Type == discordgo.ChannelTypeGroupDM,
		IsMember: true,
	}, nil
}

func convertMessage(message *discordgo.Message) clients.RawMessage {
	raw := clients.RawMessage{
		ID:   message.ID,
		TS:   formatTimestamp(message.Timestamp),
		Text: message.Content,
	}

	if message.Author != nil {
		raw.User = message.Author.ID
		if message.Author.Bot {
			raw.BotID = message.Author.ID
		}
	}

	// Joins, pins, boosts and other system messages carry a non-default type
	if message.Type != discordgo.MessageTypeDefault && message.Type != discordgo.MessageTypeReply {
		raw.SubType = "system"
	}

	if message.Thread != nil {
		raw.ReplyCount = message.Thread.MessageCount
	}

	return raw
}

// formatTimestamp renders a message time in the seconds-with-fraction string
// domain the pipeline uses for IDs and the watermark
func formatTimestamp(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixMicro())/1e6, 'f', 6, 64)
}

// snowflakeAfter converts a seconds-with-fraction timestamp into the smallest
// snowflake ID created after it
func snowflakeAfter(oldest string) (string, error) {
	if oldest == "" {
		return "", nil
	}
	seconds, err := strconv.ParseFloat(oldest, 64)
	if err != nil {
		return "", err
	}
	ms := int64(seconds * 1000)
	if ms < discordEpochMs {
		return "0", nil
	}
	return strconv.FormatInt((ms-discordEpochMs)<<22, 10), nil
}
