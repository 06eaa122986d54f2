package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds the fixed game pacing parameters. Per-room values
// (draw time, rounds, hints, capacity) live in domain.Settings instead.
type GameConfig struct {
	StartingSeconds  int // countdown between start and the first turn
	SelectingSeconds int // time the drawer has to pick a word
	ReviewSeconds    int // delay on the review screen between turns
	WordChoices      int // options offered to the drawer each turn
	RoomCodeLength   int
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from the environment, after reading an
// optional .env file, with defaults for anything unset.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			StartingSeconds:  getEnvInt("STARTING_SECONDS", 3),
			SelectingSeconds: getEnvInt("SELECTING_SECONDS", 5),
			ReviewSeconds:    getEnvInt("REVIEW_SECONDS", 5),
			WordChoices:      getEnvInt("WORD_CHOICES", 3),
			RoomCodeLength:   getEnvInt("ROOM_CODE_LENGTH", 6),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
