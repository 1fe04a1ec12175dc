package models

// ConversationKind is the kind of conversation container the chat provider exposes
type ConversationKind string

const (
	ConversationKindDirect  ConversationKind = "im"
	ConversationKindGroup   ConversationKind = "mpim"
	ConversationKindPrivate ConversationKind = "private_channel"
	ConversationKindPublic  ConversationKind = "public_channel"
)

// Conversation is an ephemeral record produced per poll cycle from the chat
// API's conversation listing. It is never persisted - it only drives fetches.
type Conversation struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Kind     ConversationKind `json:"kind"`
	IsMember bool             `json:"is_member"`
}

// MessageTypeForKind maps a conversation kind to the message type recorded
// on messages ingested from it.
func MessageTypeForKind(kind ConversationKind) MessageType {
	switch kind {
	case ConversationKindDirect:
		return MessageTypeDirect
	case ConversationKindGroup, ConversationKindPrivate:
		return MessageTypeGroup
	default:
		return MessageTypeChannel
	}
}
