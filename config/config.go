package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Casino configuration
	HouseAccountID int64 // account the bot banks stakes against
	MaxBet         int64
	DailyBonus     int64
	BonusCooldown  time.Duration

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Casino settings with defaults
		HouseAccountID: 1,
		MaxBet:         1000000,
		DailyBonus:     1000,
		BonusCooldown:  24 * time.Hour,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if houseID := os.Getenv("HOUSE_ACCOUNT_ID"); houseID != "" {
		if parsed, err := strconv.ParseInt(houseID, 10, 64); err == nil {
			config.HouseAccountID = parsed
		}
	}
	if maxBet := os.Getenv("MAX_BET"); maxBet != "" {
		if parsed, err := strconv.ParseInt(maxBet, 10, 64); err == nil {
			config.MaxBet = parsed
		}
	}
	if bonus := os.Getenv("DAILY_BONUS"); bonus != "" {
		if parsed, err := strconv.ParseInt(bonus, 10, 64); err == nil {
			config.DailyBonus = parsed
		}
	}
	if hours := os.Getenv("BONUS_COOLDOWN_HOURS"); hours != "" {
		if parsed, err := strconv.Atoi(hours); err == nil && parsed > 0 {
			config.BonusCooldown = time.Duration(parsed) * time.Hour
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
