package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hdbackend/clients"
)

// DirectoryClient implements clients.DirectoryClient against the HR platform's
// paginated users endpoint
type DirectoryClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewDirectoryClient creates a new HR-platform directory client
func NewDirectoryClient(baseURL, apiKey string) clients.DirectoryClient {
	return &DirectoryClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type directoryUserPayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Department  string `json:"department"`
}

type listUsersResponse struct {
	Users   []directoryUserPayload `json:"users"`
	HasMore bool                   `json:"has_more"`
}

// ListUsersPage fetches one page of the user directory
func (c *DirectoryClient) ListUsersPage(
	ctx context.Context,
	page, pageSize int,
) ([]clients.DirectoryUser, bool, error) {
	endpoint, err := url.Parse(c.baseURL + "/api/users")
	if err != nil {
		return nil, false, fmt.Errorf("invalid directory base URL: %w", err)
	}

	query := endpoint.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(pageSize))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build directory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("directory request returned status %d", resp.StatusCode)
	}

	var payload listUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode directory response: %w", err)
	}

	users := make([]clients.DirectoryUser, 0, len(payload.Users))
	for _, user := range payload.Users {
		users = append(users, clients.DirectoryUser{
			ID:          user.ID,
			DisplayName: user.DisplayName,
			Email:       user.Email,
			Title:       user.Title,
			Department:  user.Department,
		})
	}
	return users, payload.HasMore, nil
}
