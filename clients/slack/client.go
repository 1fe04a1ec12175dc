package slack

import (
	"context"

	"github.com/slack-go/slack"

	"hdbackend/clients"
)

// SlackClient implements the clients.ChatClient interface using the slack-go/slack SDK
type SlackClient struct {
	*slack.Client
}

// NewSlackClient creates a new Slack client with the provided bot token
func NewSlackClient(authToken string) clients.ChatClient {
	return &SlackClient{
		Client: slack.New(authToken),
	}
}

// AuthTest verifies the bot token and returns information about the bot
func (c *SlackClient) AuthTest(ctx context.Context) (*clients.AuthTestResponse, error) {
	response, err := c.Client.AuthTestContext(ctx)
	if err != nil {
		return nil, err
	}

	return &clients.AuthTestResponse{
		UserID: response.UserID,
		TeamID: response.TeamID,
	}, nil
}

// ListConversations lists all conversations visible to the bot
func (c *SlackClient) ListConversations(ctx context.Context) ([]clients.ConversationInfo, error) {
	channels, _, err := c.Client.GetConversationsContext(ctx, &slack.GetConversationsParameters{
		Types:           []string{"public_channel", "private_channel", "mpim", "im"},
		ExcludeArchived: true,
		Limit:           200,
	})
	if err != nil {
		return nil, err
	}

	conversations := make([]clients.ConversationInfo, 0, len(channels))
	for _, channel := range channels {
		conversations = append(conversations, convertChannel(&channel))
	}
	return conversations, nil
}

// FetchHistory fetches messages newer than oldest, newest-first as Slack returns them
func (c *SlackClient) FetchHistory(
	ctx context.Context,
	conversationID, oldest string,
	limit int,
) ([]clients.RawMessage, error) {
	response, err := c.Client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: conversationID,
		Oldest:    oldest,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return convertMessages(response.Messages), nil
}

// FetchThreadReplies fetches a thread's messages. Slack returns the root as the
// first element.
func (c *SlackClient) FetchThreadReplies(
	ctx context.Context,
	conversationID, rootID string,
	limit int,
) ([]clients.RawMessage, error) {
	messages, _, _, err := c.Client.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: conversationID,
		Timestamp: rootID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return convertMessages(messages), nil
}

// ResolveUser gets information about a Slack user
func (c *SlackClient) ResolveUser(ctx context.Context, userID string) (*clients.ChatUser, error) {
	user, err := c.Client.GetUserInfoContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &clients.ChatUser{
		ID:   user.ID,
		Name: user.Name,
		Profile: clients.ChatUserProfile{
			DisplayName: user.Profile.DisplayName,
			RealName:    user.Profile.RealName,
			Email:       user.Profile.Email,
			Title:       user.Profile.Title,
		},
	}, nil
}

// ResolveConversationInfo gets information about a single conversation
func (c *SlackClient) ResolveConversationInfo(
	ctx context.Context,
	conversationID string,
) (*clients.ConversationInfo, error) {
	channel, err := c.Client.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: conversationID,
	})
	if err != nil {
		return nil, err
	}

	info := convertChannel(channel)
	return &info, nil
}

func convertChannel(channel *slack.Channel) clients.ConversationInfo {
	return clients.ConversationInfo{
		ID:        channel.ID,
		Name:      channel.Name,
		IsIM:      channel.IsIM,
		IsGroup:   channel.IsMpIM,
		IsPrivate: channel.IsPrivate,
		IsMember:  channel.IsMember,
	}
}

func convertMessages(messages []slack.Message) []clients.RawMessage {
	raw := make([]clients.RawMessage, 0, len(messages))
	for _, message := range messages {
		raw = append(raw, clients.RawMessage{
			ID:         message.Timestamp,
			TS:         message.Timestamp,
			ThreadTS:   message.ThreadTimestamp,
			User:       message.User,
			BotID:      message.BotID,
			SubType:    message.SubType,
			Text:       message.Text,
			ReplyCount: message.ReplyCount,
		})
	}
	return raw
}
