package services

import (
	"context"

	"github.com/samber/mo"

	"hdbackend/models"
)

// MessageHandler is a live observer callback invoked for every ingested message
type MessageHandler func(message *models.Message)

// MessagesService defines the interface for stored-message operations
type MessagesService interface {
	UpsertMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id string) (mo.Option[*models.Message], error)
	ListMessages(ctx context.Context, limit int) ([]*models.Message, error)
	UpdateMessageStatus(
		ctx context.Context,
		id string,
		status models.MessageStatus,
	) (*models.Message, error)
	CountMessagesByStatus(ctx context.Context, status models.MessageStatus) (int, error)
}

// SettingsService defines the interface for workspace setting operations
type SettingsService interface {
	UpsertBooleanSetting(ctx context.Context, key string, value bool) error
	UpsertStringArraySetting(ctx context.Context, key string, value []string) error
	GetBooleanSetting(ctx context.Context, key string) (mo.Option[bool], error)
	GetStringArraySetting(ctx context.Context, key string) (mo.Option[[]string], error)
	GetWorkspaceSettings(ctx context.Context) (*models.WorkspaceSettings, error)
	UpdateWorkspaceSettings(ctx context.Context, settings *models.WorkspaceSettings) error
}

// CategoryRulesService defines the interface for classification rule operations
type CategoryRulesService interface {
	ListCategoryRules(ctx context.Context) ([]models.CategoryRule, error)
	UpsertCategoryRule(ctx context.Context, rule *models.CategoryRule) error
	DeleteCategoryRule(ctx context.Context, category string) error
	SeedDefaultRules(ctx context.Context) error
}

// DirectoryService defines the interface for HR-platform directory operations
type DirectoryService interface {
	SyncDirectory(ctx context.Context) (int, error)
	GetUserProfileByProviderID(
		ctx context.Context,
		providerUserID string,
	) (mo.Option[*models.UserProfile], error)
}

// RecordSink abstracts persistence plus live notification fan-out for
// ingested messages
type RecordSink interface {
	Save(ctx context.Context, message *models.Message)
	OnMessage(handler MessageHandler)
}

// ResponderService defines the interface for AI reply drafting
type ResponderService interface {
	DraftReply(ctx context.Context, messageID string) (*models.ResponseDraft, error)
}
