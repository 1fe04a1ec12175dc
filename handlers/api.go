package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"hdbackend/core"
	"hdbackend/models"
	"hdbackend/services"
)

// PollerControl is the slice of the ingestion use case the HTTP API drives
type PollerControl interface {
	ForcePoll(ctx context.Context) error
	IsConnected() bool
}

type APIHandler struct {
	messagesService  services.MessagesService
	settingsService  services.SettingsService
	rulesService     services.CategoryRulesService
	directoryService services.DirectoryService
	responderService services.ResponderService
	poller           PollerControl
}

func NewAPIHandler(
	messagesService services.MessagesService,
	settingsService services.SettingsService,
	rulesService services.CategoryRulesService,
	directoryService services.DirectoryService,
	responderService services.ResponderService,
	poller PollerControl,
) *APIHandler {
	return &APIHandler{
		messagesService:  messagesService,
		settingsService:  settingsService,
		rulesService:     rulesService,
		directoryService: directoryService,
		responderService: responderService,
		poller:           poller,
	}
}

// SetupEndpoints registers all API routes with the router
func (h *APIHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.HandleFunc("/api/messages", h.HandleListMessages).Methods("GET")
	router.HandleFunc("/api/messages/{id}/status", h.HandleUpdateMessageStatus).Methods("POST")
	router.HandleFunc("/api/messages/{id}/draft", h.HandleDraftReply).Methods("POST")
	router.HandleFunc("/api/poll", h.HandleForcePoll).Methods("POST")
	router.HandleFunc("/api/settings/workspace", h.HandleGetWorkspaceSettings).Methods("GET")
	router.HandleFunc("/api/settings/workspace", h.HandleUpdateWorkspaceSettings).Methods("PUT")
	router.HandleFunc("/api/rules", h.HandleListRules).Methods("GET")
	router.HandleFunc("/api/rules", h.HandleUpsertRule).Methods("PUT")
	router.HandleFunc("/api/rules/{category}", h.HandleDeleteRule).Methods("DELETE")
	router.HandleFunc("/api/directory/sync", h.HandleSyncDirectory).Methods("POST")
}

func (h *APIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"connected": h.poller.IsConnected(),
	})
}

func (h *APIHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 List messages request received from %s", r.RemoteAddr)

	limit := 50
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	messages, err := h.messagesService.ListMessages(r.Context(), limit)
	if err != nil {
		log.Printf("❌ Failed to list messages: %v", err)
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, messages)
}

type updateStatusRequest struct {
	Status models.MessageStatus `json:"status"`
}

func (h *APIHandler) HandleUpdateMessageStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Update message status request received from %s", r.RemoteAddr)

	id := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch req.Status {
	case models.MessageStatusPending, models.MessageStatusResponded, models.MessageStatusDismissed:
	default:
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	message, err := h.messagesService.UpdateMessageStatus(r.Context(), id, req.Status)
	if err != nil {
		if core.IsNotFoundError(err) {
			http.Error(w, "message not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to update message status: %v", err)
		http.Error(w, "failed to update message status", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, message)
}

func (h *APIHandler) HandleDraftReply(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Draft reply request received from %s", r.RemoteAddr)

	if h.responderService == nil {
		http.Error(w, "reply drafting is not configured", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["id"]

	draft, err := h.responderService.DraftReply(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			http.Error(w, "message not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to draft reply: %v", err)
		http.Error(w, "failed to draft reply", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, draft)
}

func (h *APIHandler) HandleForcePoll(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Force poll request received from %s", r.RemoteAddr)

	if err := h.poller.ForcePoll(r.Context()); err != nil {
		log.Printf("❌ Force poll failed: %v", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "polled"})
}

func (h *APIHandler) HandleGetWorkspaceSettings(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Get workspace settings request received from %s", r.RemoteAddr)

	settings, err := h.settingsService.GetWorkspaceSettings(r.Context())
	if err != nil {
		log.Printf("❌ Failed to get workspace settings: %v", err)
		http.Error(w, "failed to get workspace settings", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, settings)
}

func (h *APIHandler) HandleUpdateWorkspaceSettings(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Update workspace settings request received from %s", r.RemoteAddr)

	var settings models.WorkspaceSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.settingsService.UpdateWorkspaceSettings(r.Context(), &settings); err != nil {
		log.Printf("❌ Failed to update workspace settings: %v", err)
		http.Error(w, "failed to update workspace settings", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, settings)
}

func (h *APIHandler) HandleListRules(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 List category rules request received from %s", r.RemoteAddr)

	rules, err := h.rulesService.ListCategoryRules(r.Context())
	if err != nil {
		log.Printf("❌ Failed to list category rules: %v", err)
		http.Error(w, "failed to list category rules", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, rules)
}

func (h *APIHandler) HandleUpsertRule(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Upsert category rule request received from %s", r.RemoteAddr)

	var rule models.CategoryRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.rulesService.UpsertCategoryRule(r.Context(), &rule); err != nil {
		log.Printf("❌ Failed to upsert category rule: %v", err)
		http.Error(w, "failed to upsert category rule", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, rule)
}

func (h *APIHandler) HandleDeleteRule(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Delete category rule request received from %s", r.RemoteAddr)

	category := mux.Vars(r)["category"]

	if err := h.rulesService.DeleteCategoryRule(r.Context(), category); err != nil {
		if core.IsNotFoundError(err) {
			http.Error(w, "category rule not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to delete category rule: %v", err)
		http.Error(w, "failed to delete category rule", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) HandleSyncDirectory(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Directory sync request received from %s", r.RemoteAddr)

	if h.directoryService == nil {
		http.Error(w, "directory sync is not configured", http.StatusServiceUnavailable)
		return
	}

	count, err := h.directoryService.SyncDirectory(r.Context())
	if err != nil {
		log.Printf("❌ Directory sync failed: %v", err)
		http.Error(w, "directory sync failed", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]int{"synced_users": count})
}

func (h *APIHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to write JSON response: %v", err)
	}
}
