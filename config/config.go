package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type SlackConfig struct {
	BotToken string
}

// IsConfigured returns true if all required Slack configuration is present
func (c SlackConfig) IsConfigured() bool {
	return c.BotToken != ""
}

type DiscordConfig struct {
	BotToken string
	GuildID  string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" && c.GuildID != ""
}

type AnthropicConfig struct {
	APIKey string
}

// IsConfigured returns true if all required Anthropic configuration is present
func (c AnthropicConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type DirectoryConfig struct {
	BaseURL string
	APIKey  string
}

// IsConfigured returns true if all required HR-platform configuration is present
func (c DirectoryConfig) IsConfigured() bool {
	return c.BaseURL != "" && c.APIKey != ""
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	UseStrictConfig    bool // If true, error when any integration is not fully configured

	// Integration configurations (grouped)
	SlackConfig     SlackConfig
	DiscordConfig   DiscordConfig
	AnthropicConfig AnthropicConfig
	DirectoryConfig DirectoryConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "false") == "true",

		// Slack configuration (optional when Discord is configured)
		SlackConfig: SlackConfig{
			BotToken: os.Getenv("SLACK_BOT_TOKEN"),
		},

		// Discord configuration (optional)
		DiscordConfig: DiscordConfig{
			BotToken: os.Getenv("DISCORD_BOT_TOKEN"),
			GuildID:  os.Getenv("DISCORD_GUILD_ID"),
		},

		// Anthropic configuration (optional)
		AnthropicConfig: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
		},

		// HR-platform directory configuration (optional)
		DirectoryConfig: DirectoryConfig{
			BaseURL: os.Getenv("DIRECTORY_BASE_URL"),
			APIKey:  os.Getenv("DIRECTORY_API_KEY"),
		},
	}

	if !config.SlackConfig.IsConfigured() && !config.DiscordConfig.IsConfigured() {
		return nil, fmt.Errorf("no chat provider configured - set SLACK_BOT_TOKEN or DISCORD_BOT_TOKEN/DISCORD_GUILD_ID")
	}

	// Log which integrations are configured
	if config.SlackConfig.IsConfigured() {
		log.Printf("✅ Slack integration configured")
	} else {
		log.Printf("⚠️ Slack integration not configured")
	}

	if config.DiscordConfig.IsConfigured() {
		log.Printf("✅ Discord integration configured")
	} else {
		log.Printf("⚠️ Discord integration not configured")
	}

	if config.AnthropicConfig.IsConfigured() {
		log.Printf("✅ Anthropic integration configured")
	} else {
		log.Printf("⚠️ Anthropic integration not configured - reply drafting will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("anthropic integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.DirectoryConfig.IsConfigured() {
		log.Printf("✅ HR-platform directory configured")
	} else {
		log.Printf("⚠️ HR-platform directory not configured - profile enrichment will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("directory integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
