package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hdbackend/models"
	"hdbackend/services/messages"
	"hdbackend/services/rules"
	"hdbackend/services/settings"
)

type fakePoller struct {
	connected bool
	forceErr  error
	polled    bool
}

func (p *fakePoller) ForcePoll(ctx context.Context) error {
	p.polled = true
	return p.forceErr
}

func (p *fakePoller) IsConnected() bool {
	return p.connected
}

type apiTestEnv struct {
	router       *mux.Router
	mockMessages *messages.MockMessagesService
	mockSettings *settings.MockSettingsService
	mockRules    *rules.MockCategoryRulesService
	poller       *fakePoller
}

func setupAPITest() *apiTestEnv {
	env := &apiTestEnv{
		mockMessages: new(messages.MockMessagesService),
		mockSettings: new(settings.MockSettingsService),
		mockRules:    new(rules.MockCategoryRulesService),
		poller:       &fakePoller{connected: true},
	}

	handler := NewAPIHandler(env.mockMessages, env.mockSettings, env.mockRules, nil, nil, env.poller)
	env.router = mux.NewRouter()
	handler.SetupEndpoints(env.router)
	return env
}

func (e *apiTestEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	env := setupAPITest()

	rec := env.do("GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, true, resp["connected"])
}

func TestHandleListMessages(t *testing.T) {
	t.Run("ReturnsMessagesWithDefaultLimit", func(t *testing.T) {
		env := setupAPITest()
		env.mockMessages.On("ListMessages", mock.Anything, 50).Return([]*models.Message{
			{ID: "1.000000", Channel: "it-support", Category: "hardware"},
		}, nil)

		rec := env.do("GET", "/api/messages", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []*models.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "it-support", resp[0].Channel)
		env.mockMessages.AssertExpectations(t)
	})

	t.Run("HonorsLimitParameter", func(t *testing.T) {
		env := setupAPITest()
		env.mockMessages.On("ListMessages", mock.Anything, 5).Return([]*models.Message{}, nil)

		rec := env.do("GET", "/api/messages?limit=5", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		env.mockMessages.AssertExpectations(t)
	})

	t.Run("RejectsInvalidLimit", func(t *testing.T) {
		env := setupAPITest()

		assert.Equal(t, http.StatusBadRequest, env.do("GET", "/api/messages?limit=abc", nil).Code)
		assert.Equal(t, http.StatusBadRequest, env.do("GET", "/api/messages?limit=0", nil).Code)
	})

	t.Run("ServiceErrorIs500", func(t *testing.T) {
		env := setupAPITest()
		env.mockMessages.On("ListMessages", mock.Anything, 50).Return(nil, fmt.Errorf("db down"))

		assert.Equal(t, http.StatusInternalServerError, env.do("GET", "/api/messages", nil).Code)
	})
}

func TestHandleUpdateMessageStatus(t *testing.T) {
	t.Run("UpdatesStatus", func(t *testing.T) {
		env := setupAPITest()
		updated := &models.Message{ID: "1.000000", Status: models.MessageStatusResponded}
		env.mockMessages.On("UpdateMessageStatus", mock.Anything, "1.000000", models.MessageStatusResponded).
			Return(updated, nil)

		rec := env.do("POST", "/api/messages/1.000000/status", map[string]string{"status": "RESPONDED"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.MessageStatusResponded, resp.Status)
		env.mockMessages.AssertExpectations(t)
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		env := setupAPITest()

		rec := env.do("POST", "/api/messages/1.000000/status", map[string]string{"status": "ARCHIVED"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownMessageIs404", func(t *testing.T) {
		env := setupAPITest()
		env.mockMessages.On("UpdateMessageStatus", mock.Anything, "9.000000", models.MessageStatusDismissed).
			Return(nil, fmt.Errorf("message not found: 9.000000"))

		rec := env.do("POST", "/api/messages/9.000000/status", map[string]string{"status": "DISMISSED"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleForcePoll(t *testing.T) {
	t.Run("TriggersPoll", func(t *testing.T) {
		env := setupAPITest()

		rec := env.do("POST", "/api/poll", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.poller.polled)
	})

	t.Run("BusyPollerIsConflict", func(t *testing.T) {
		env := setupAPITest()
		env.poller.forceErr = fmt.Errorf("a polling tick is already in progress")

		rec := env.do("POST", "/api/poll", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandleWorkspaceSettings(t *testing.T) {
	t.Run("GetReturnsSettings", func(t *testing.T) {
		env := setupAPITest()
		env.mockSettings.On("GetWorkspaceSettings", mock.Anything).Return(&models.WorkspaceSettings{
			MonitoredChannels: []string{"it-support"},
			EnableMentions:    true,
			EnableThreads:     true,
		}, nil)

		rec := env.do("GET", "/api/settings/workspace", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.WorkspaceSettings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"it-support"}, resp.MonitoredChannels)
		assert.True(t, resp.EnableThreads)
	})

	t.Run("PutUpdatesSettings", func(t *testing.T) {
		env := setupAPITest()
		env.mockSettings.On("UpdateWorkspaceSettings", mock.Anything, mock.Anything).Return(nil)

		rec := env.do("PUT", "/api/settings/workspace", &models.WorkspaceSettings{
			IgnoredChannels: []string{"random"},
			EnableMentions:  true,
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		env.mockSettings.AssertExpectations(t)
	})
}

func TestHandleRules(t *testing.T) {
	t.Run("ListReturnsRules", func(t *testing.T) {
		env := setupAPITest()
		env.mockRules.On("ListCategoryRules", mock.Anything).Return(models.DefaultCategoryRules(), nil)

		rec := env.do("GET", "/api/rules", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []models.CategoryRule
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 6)
	})

	t.Run("DeleteUnknownRuleIs404", func(t *testing.T) {
		env := setupAPITest()
		env.mockRules.On("DeleteCategoryRule", mock.Anything, "bogus").
			Return(fmt.Errorf("category rule not found: bogus"))

		rec := env.do("DELETE", "/api/rules/bogus", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("DeleteReturnsNoContent", func(t *testing.T) {
		env := setupAPITest()
		env.mockRules.On("DeleteCategoryRule", mock.Anything, "password").Return(nil)

		rec := env.do("DELETE", "/api/rules/password", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestHandleDraftReplyUnconfigured(t *testing.T) {
	env := setupAPITest()

	rec := env.do("POST", "/api/messages/1.000000/draft", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleSyncDirectoryUnconfigured(t *testing.T) {
	env := setupAPITest()

	rec := env.do("POST", "/api/directory/sync", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
