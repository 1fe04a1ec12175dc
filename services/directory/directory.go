package directory

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/samber/mo"

	"hdbackend/clients"
	"hdbackend/db"
	"hdbackend/models"
)

const (
	directoryPageSize = 100
	// interPageDelay keeps full-directory syncs under the HR platform's rate limits
	interPageDelay = 100 * time.Millisecond
)

type DirectoryService struct {
	directoryClient  clients.DirectoryClient
	userProfilesRepo *db.PostgresUserProfilesRepository
}

func NewDirectoryService(
	client clients.DirectoryClient,
	repo *db.PostgresUserProfilesRepository,
) *DirectoryService {
	return &DirectoryService{
		directoryClient:  client,
		userProfilesRepo: repo,
	}
}

// SyncDirectory pulls the full user directory from the HR platform, page by
// page, and upserts every entry. Pages are fetched sequentially with a fixed
// delay in between.
func (s *DirectoryService) SyncDirectory(ctx context.Context) (int, error) {
	log.Printf("📋 Starting to sync user directory")

	total := 0
	page := 1
	for {
		users, hasMore, err := s.directoryClient.ListUsersPage(ctx, page, directoryPageSize)
		if err != nil {
			return total, fmt.Errorf("failed to fetch directory page %d: %w", page, err)
		}

		for _, user := range users {
			profile := &models.UserProfile{
				ProviderUserID: user.ID,
				DisplayName:    user.DisplayName,
				Email:          user.Email,
				Title:          user.Title,
				Department:     user.Department,
			}
			if err := s.userProfilesRepo.UpsertUserProfile(ctx, profile); err != nil {
				return total, fmt.Errorf("failed to upsert user profile %s: %w", user.ID, err)
			}
			total++
		}

		if !hasMore {
			break
		}
		page++

		select {
		case <-ctx.Done():
			return total, ctx.Err()
		case <-time.After(interPageDelay):
		}
	}

	log.Printf("📋 Completed successfully - synced %d directory users", total)
	return total, nil
}

func (s *DirectoryService) GetUserProfileByProviderID(
	ctx context.Context,
	providerUserID string,
) (mo.Option[*models.UserProfile], error) {
	if providerUserID == "" {
		return mo.None[*models.UserProfile](), fmt.Errorf("provider user ID cannot be empty")
	}

	maybeProfile, err := s.userProfilesRepo.GetUserProfileByProviderID(ctx, providerUserID)
	if err != nil {
		return mo.None[*models.UserProfile](), fmt.Errorf("failed to get user profile: %w", err)
	}

	return maybeProfile, nil
}
