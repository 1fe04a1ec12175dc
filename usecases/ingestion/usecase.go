package ingestion

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"hdbackend/clients"
	"hdbackend/models"
	"hdbackend/services"
)

const (
	defaultPollInterval = 10 * time.Second
	historyPageSize     = 100
	threadFetchLimit    = 100
	threadHistoryLimit  = 5
	// backfillWindow bounds how far back a fresh connect reaches: far enough
	// to catch a backlog, not far enough to flood storage
	backfillWindow = 24 * time.Hour
)

// IngestionUseCase polls the chat provider for new messages and thread
// replies, classifies them and hands the resulting records to the sink.
//
// Poll state is owned by this struct: the watermark only ever advances (max
// merge under the mutex) and a single-flight guard ensures at most one tick
// runs at a time, so a stalled tick cannot race the next timer fire.
type IngestionUseCase struct {
	chatClient       clients.ChatClient
	settingsService  services.SettingsService
	rulesService     services.CategoryRulesService
	directoryService services.DirectoryService
	sink             services.RecordSink

	channels     *channelNameCache
	pollInterval time.Duration

	mu            sync.Mutex
	watermark     float64
	connected     bool
	stop          chan struct{}
	overrideRules []models.CategoryRule

	ticking atomic.Bool
}

func NewIngestionUseCase(
	chatClient clients.ChatClient,
	settingsService services.SettingsService,
	rulesService services.CategoryRulesService,
	directoryService services.DirectoryService,
	sink services.RecordSink,
) *IngestionUseCase {
	return &IngestionUseCase{
		chatClient:       chatClient,
		settingsService:  settingsService,
		rulesService:     rulesService,
		directoryService: directoryService,
		sink:             sink,
		channels:         newChannelNameCache(),
		pollInterval:     defaultPollInterval,
	}
}

// Connect authenticates against the chat provider and starts the polling
// loop. The watermark starts at now minus the backfill window.
func (s *IngestionUseCase) Connect(ctx context.Context) error {
	log.Printf("📋 Starting to connect ingestion poller")

	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		log.Printf("📋 Completed successfully - already connected")
		return nil
	}
	s.mu.Unlock()

	identity, err := s.chatClient.AuthTest(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	s.mu.Lock()
	s.connected = true
	s.watermark = float64(time.Now().Add(-backfillWindow).UnixNano()) / 1e9
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	go s.pollLoop(stop)

	log.Printf("📋 Completed successfully - connected as bot %s", identity.UserID)
	return nil
}

// Disconnect stops the polling loop. An in-flight tick is allowed to finish
// naturally. Safe to call repeatedly.
func (s *IngestionUseCase) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return
	}
	close(s.stop)
	s.stop = nil
	s.connected = false
	log.Printf("🛑 Ingestion poller disconnected")
}

func (s *IngestionUseCase) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// ForcePoll triggers one manual tick outside the timer schedule, for
// diagnostics and testing
func (s *IngestionUseCase) ForcePoll(ctx context.Context) error {
	if !s.IsConnected() {
		return fmt.Errorf("ingestion poller is not connected")
	}
	return s.pollOnce(ctx)
}

// UpdateCategoryKeywords replaces the active classification rule set without
// restarting the poller. Passing nil reverts to the rules service.
func (s *IngestionUseCase) UpdateCategoryKeywords(rules []models.CategoryRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrideRules = rules
	log.Printf("📋 Updated active category rule set (%d rules)", len(rules))
}

func (s *IngestionUseCase) pollLoop(stop chan struct{}) {
	// first tick fires immediately, then on the fixed period
	s.runTick()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.runTick()
		}
	}
}

func (s *IngestionUseCase) runTick() {
	if err := s.pollOnce(context.Background()); err != nil {
		log.Printf("⚠️ Polling tick not completed: %v", err)
	}
}

// pollOnce executes one full polling tick: list conversations, filter by
// scope, fetch and process each conversation's new messages, then advance the
// watermark to the highest timestamp seen.
func (s *IngestionUseCase) pollOnce(ctx context.Context) (err error) {
	if !s.ticking.CompareAndSwap(false, true) {
		return fmt.Errorf("a polling tick is already in progress")
	}
	defer s.ticking.Store(false)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("polling tick panicked: %v", r)
		}
	}()

	settings := s.loadSettings(ctx)
	rules := s.loadRules(ctx)

	conversations, err := s.chatClient.ListConversations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	oldest := formatTimestamp(s.currentWatermark())
	maxSeen := s.currentWatermark()

	for _, info := range conversations {
		conv := s.toConversation(ctx, info)
		if !ShouldMonitor(conv, settings) {
			continue
		}

		// errors in one conversation must not abort the rest of the tick
		seen, convErr := s.processConversation(ctx, conv, oldest, settings, rules)
		if convErr != nil {
			log.Printf("⚠️ Failed to poll conversation %s (%s): %v", conv.Name, conv.ID, convErr)
			continue
		}
		if seen > maxSeen {
			maxSeen = seen
		}
	}

	s.advanceWatermark(maxSeen)
	return nil
}

// processConversation fetches new messages for one conversation and runs each
// through the per-message pipeline, expanding thread roots as it goes.
// Returns the highest timestamp seen.
func (s *IngestionUseCase) processConversation(
	ctx context.Context,
	conv models.Conversation,
	oldest string,
	settings *models.WorkspaceSettings,
	rules []models.CategoryRule,
) (float64, error) {
	history, err := s.chatClient.FetchHistory(ctx, conv.ID, oldest, historyPageSize)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch history: %w", err)
	}

	var maxSeen float64
	// the provider returns newest-first; process oldest-first
	for i := len(history) - 1; i >= 0; i-- {
		raw := history[i]
		if ts, ok := parseTimestamp(raw.TS); ok && ts > maxSeen {
			maxSeen = ts
		}

		s.processRawMessage(ctx, conv, raw, settings, rules, nil)

		if settings.EnableThreads && raw.IsThreadRoot() {
			seen, threadErr := s.expandThread(ctx, conv, raw, settings, rules)
			if threadErr != nil {
				log.Printf("⚠️ Failed to expand thread %s in %s: %v", raw.ID, conv.Name, threadErr)
				continue
			}
			if seen > maxSeen {
				maxSeen = seen
			}
		}
	}

	return maxSeen, nil
}

// processRawMessage runs one raw message through the per-message pipeline:
// bot/subtype filtering, conversion and emission to the sink
func (s *IngestionUseCase) processRawMessage(
	ctx context.Context,
	conv models.Conversation,
	raw clients.RawMessage,
	settings *models.WorkspaceSettings,
	rules []models.CategoryRule,
	threadHistory []string,
) {
	if raw.BotID != "" {
		return
	}
	if !isIngestableSubType(raw.SubType) {
		return
	}

	message, ok := s.convertRawMessage(ctx, conv, raw, settings, rules, threadHistory)
	if !ok {
		// malformed (missing text or author): skipped silently
		return
	}

	s.sink.Save(ctx, message)
}

// expandThread fetches a thread root's replies and processes each through the
// same per-message pipeline. The first fetched element duplicates the root and
// is skipped. Replies are never expanded further (max depth: root + replies).
func (s *IngestionUseCase) expandThread(
	ctx context.Context,
	conv models.Conversation,
	root clients.RawMessage,
	settings *models.WorkspaceSettings,
	rules []models.CategoryRule,
) (float64, error) {
	replies, err := s.chatClient.FetchThreadReplies(ctx, conv.ID, root.ID, threadFetchLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch thread replies: %w", err)
	}
	if len(replies) <= 1 {
		return 0, nil
	}

	var maxSeen float64
	history := appendThreadHistory(nil, root.Text)

	for _, reply := range replies[1:] {
		if ts, ok := parseTimestamp(reply.TS); ok && ts > maxSeen {
			maxSeen = ts
		}

		threadHistory := make([]string, len(history))
		copy(threadHistory, history)
		s.processRawMessage(ctx, conv, reply, settings, rules, threadHistory)

		history = appendThreadHistory(history, reply.Text)
	}

	return maxSeen, nil
}

// appendThreadHistory keeps the abbreviated thread history bounded to the
// most recent entries
func appendThreadHistory(history []string, text string) []string {
	if text == "" {
		return history
	}
	history = append(history, text)
	if len(history) > threadHistoryLimit {
		history = history[len(history)-threadHistoryLimit:]
	}
	return history
}

// toConversation builds the ephemeral conversation record for a tick,
// resolving the display name through the channel cache
func (s *IngestionUseCase) toConversation(
	ctx context.Context,
	info clients.ConversationInfo,
) models.Conversation {
	name := s.channels.Resolve(ctx, s.chatClient, info.ID)
	if name == "" {
		name = info.Name
	}
	if name == "" {
		name = info.ID
	}

	kind := models.ConversationKindPublic
	switch {
	case info.IsIM:
		kind = models.ConversationKindDirect
	case info.IsGroup:
		kind = models.ConversationKindGroup
	case info.IsPrivate:
		kind = models.ConversationKindPrivate
	}

	return models.Conversation{
		ID:       info.ID,
		Name:     name,
		Kind:     kind,
		IsMember: info.IsMember,
	}
}

// loadSettings reads the workspace settings for this tick. On failure the
// poller falls back to an empty configuration, which the scope filter treats
// as include-everything - over-monitoring beats silently going dark.
func (s *IngestionUseCase) loadSettings(ctx context.Context) *models.WorkspaceSettings {
	settings, err := s.settingsService.GetWorkspaceSettings(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to load workspace settings, using defaults: %v", err)
		return &models.WorkspaceSettings{EnableMentions: true, EnableThreads: true}
	}
	return settings
}

// loadRules reads the active classification rule set for this tick
func (s *IngestionUseCase) loadRules(ctx context.Context) []models.CategoryRule {
	s.mu.Lock()
	override := s.overrideRules
	s.mu.Unlock()
	if override != nil {
		return override
	}

	rules, err := s.rulesService.ListCategoryRules(ctx)
	if err != nil {
		log.Printf("⚠️ Failed to load category rules, using defaults: %v", err)
		return models.DefaultCategoryRules()
	}
	return rules
}

func (s *IngestionUseCase) currentWatermark() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watermark
}

// advanceWatermark moves the watermark forward, never backward
func (s *IngestionUseCase) advanceWatermark(seen float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seen > s.watermark {
		s.watermark = seen
	}
}

// isIngestableSubType filters out system events (joins, leaves, pins) which
// are never converted to message records. Thread broadcasts are regular
// user messages.
func isIngestableSubType(subType string) bool {
	return subType == "" || subType == "thread_broadcast"
}

func parseTimestamp(ts string) (float64, bool) {
	value, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func formatTimestamp(value float64) string {
	return strconv.FormatFloat(value, 'f', 6, 64)
}
