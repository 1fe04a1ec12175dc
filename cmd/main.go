package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"hdbackend/clients"
	directoryclient "hdbackend/clients/directory"
	discordclient "hdbackend/clients/discord"
	slackclient "hdbackend/clients/slack"
	"hdbackend/config"
	"hdbackend/db"
	"hdbackend/handlers"
	"hdbackend/models"
	"hdbackend/services"
	"hdbackend/services/directory"
	"hdbackend/services/messages"
	"hdbackend/services/recordsink"
	"hdbackend/services/responder"
	"hdbackend/services/rules"
	"hdbackend/services/settings"
	"hdbackend/usecases/ingestion"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	messagesRepo := db.NewPostgresMessagesRepository(dbConn, cfg.DatabaseSchema)
	settingsRepo := db.NewPostgresSettingsRepository(dbConn, cfg.DatabaseSchema)
	rulesRepo := db.NewPostgresCategoryRulesRepository(dbConn, cfg.DatabaseSchema)
	userProfilesRepo := db.NewPostgresUserProfilesRepository(dbConn, cfg.DatabaseSchema)

	messagesService := messages.NewMessagesService(messagesRepo)
	settingsService := settings.NewSettingsService(settingsRepo)
	rulesService := rules.NewCategoryRulesService(rulesRepo)

	var directoryService services.DirectoryService
	if cfg.DirectoryConfig.IsConfigured() {
		directoryClient := directoryclient.NewDirectoryClient(
			cfg.DirectoryConfig.BaseURL,
			cfg.DirectoryConfig.APIKey,
		)
		directoryService = directory.NewDirectoryService(directoryClient, userProfilesRepo)
	}

	var responderService services.ResponderService
	if cfg.AnthropicConfig.IsConfigured() {
		responderService = responder.NewResponderService(cfg.AnthropicConfig.APIKey, messagesService)
	}

	chatClient, err := buildChatClient(cfg)
	if err != nil {
		return err
	}

	sink := recordsink.NewRecordSinkService(messagesService)
	sink.OnMessage(func(message *models.Message) {
		log.Printf("✅ Ingested message %s [%s/%s] in #%s", message.ID, message.Category, message.Priority, message.Channel)
	})

	ingestionUseCase := ingestion.NewIngestionUseCase(
		chatClient,
		settingsService,
		rulesService,
		directoryService,
		sink,
	)

	ctx := context.Background()
	if err := rulesService.SeedDefaultRules(ctx); err != nil {
		return err
	}
	if err := ingestionUseCase.Connect(ctx); err != nil {
		return err
	}
	defer ingestionUseCase.Disconnect()

	apiHandler := handlers.NewAPIHandler(
		messagesService,
		settingsService,
		rulesService,
		directoryService,
		responderService,
		ingestionUseCase,
	)

	router := mux.NewRouter()
	apiHandler.SetupEndpoints(router)

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

// buildChatClient selects the chat provider: Slack when configured, Discord
// otherwise. LoadConfig guarantees at least one is present.
func buildChatClient(cfg *config.AppConfig) (clients.ChatClient, error) {
	if cfg.SlackConfig.IsConfigured() {
		log.Printf("📋 Using Slack as the chat provider")
		return slackclient.NewSlackClient(cfg.SlackConfig.BotToken), nil
	}

	log.Printf("📋 Using Discord as the chat provider")
	return discordclient.NewDiscordClient(cfg.DiscordConfig.BotToken, cfg.DiscordConfig.GuildID)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
