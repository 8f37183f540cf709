package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken   string
	Database   DatabaseConfig
	Vocabulary VocabularyConfig
	Translator TranslatorConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// VocabularyConfig holds synchronizer and cache settings
type VocabularyConfig struct {
	DefaultLanguage     string
	InitialProficiency  int
	RecoveryTTL         time.Duration
	ListTTL             time.Duration
	CountTTL            time.Duration
	ConfidenceThreshold float64
}

// TranslatorConfig holds translation provider settings
type TranslatorConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "vocam"),
			User:     getEnv("DB_USER", "vocam"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Translator: TranslatorConfig{
			URL:    getEnv("TRANSLATOR_URL", "http://localhost:5000"),
			APIKey: os.Getenv("TRANSLATOR_API_KEY"),
		},
	}

	var err error
	v := &cfg.Vocabulary
	v.DefaultLanguage = getEnv("VOCAB_DEFAULT_LANGUAGE", "es")
	if v.InitialProficiency, err = getEnvInt("VOCAB_INITIAL_PROFICIENCY", 0); err != nil {
		return nil, err
	}
	if v.RecoveryTTL, err = getEnvDuration("VOCAB_RECOVERY_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if v.ListTTL, err = getEnvDuration("VOCAB_LIST_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if v.CountTTL, err = getEnvDuration("VOCAB_COUNT_TTL", time.Minute); err != nil {
		return nil, err
	}
	if v.ConfidenceThreshold, err = getEnvFloat("VOCAB_CONFIDENCE_THRESHOLD", 0.5); err != nil {
		return nil, err
	}
	if cfg.Translator.Timeout, err = getEnvDuration("TRANSLATOR_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if v.InitialProficiency < 0 || v.InitialProficiency > 100 {
		return nil, fmt.Errorf("VOCAB_INITIAL_PROFICIENCY must be between 0 and 100")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, value)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, value)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, value)
	}
	return d, nil
}
