package clients

// AuthTestResponse identifies the authenticated bot
type AuthTestResponse struct {
	UserID string
	TeamID string
}

// ConversationInfo is the provider's view of a conversation from the listing
// or info endpoints
type ConversationInfo struct {
	ID        string
	Name      string
	IsIM      bool
	IsGroup   bool
	IsPrivate bool
	IsMember  bool
}

// RawMessage is a single message as fetched from the provider, before any
// normalization or classification. TS is the provider's timestamp-like string
// (seconds with fraction); ID is the provider's message identifier used for
// thread fetches (equal to TS on Slack).
type RawMessage struct {
	ID         string
	TS         string
	ThreadTS   string
	User       string
	BotID      string
	SubType    string
	Text       string
	ReplyCount int
}

// IsThreadRoot reports whether this message starts a thread with known replies
func (m RawMessage) IsThreadRoot() bool {
	return m.ReplyCount > 0 && (m.ThreadTS == "" || m.ThreadTS == m.TS)
}

// IsThreadReply reports whether this message is a reply nested under a root
func (m RawMessage) IsThreadReply() bool {
	return m.ThreadTS != "" && m.ThreadTS != m.TS
}

// ChatUserProfile holds the display fields of a chat user
type ChatUserProfile struct {
	DisplayName string
	RealName    string
	Email       string
	Title       string
}

// ChatUser is a resolved chat user
type ChatUser struct {
	ID      string
	Name    string
	Profile ChatUserProfile
}

// DisplayName extracts the best available display name from a chat user.
// Priority: DisplayName > RealName > Name > ID.
func (u *ChatUser) DisplayName() string {
	if u.Profile.DisplayName != "" {
		return u.Profile.DisplayName
	}
	if u.Profile.RealName != "" {
		return u.Profile.RealName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// DirectoryUser is one HR-platform directory entry
type DirectoryUser struct {
	ID          string
	DisplayName string
	Email       string
	Title       string
	Department  string
}
