package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`
	LLMAPIURL                        string `mapstructure:"LLM_API_URL"`
	LLMAPIKey                        string `mapstructure:"LLM_API_KEY"`
	LLMModel                         string `mapstructure:"LLM_MODEL"`
	ContributionRewardPoints         int    `mapstructure:"CONTRIBUTION_REWARD_POINTS"`
	ImportBatchSize                  int    `mapstructure:"IMPORT_BATCH_SIZE"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LLM_MODEL", "gpt-4o-mini")
	viper.SetDefault("CONTRIBUTION_REWARD_POINTS", 10)
	// Firestore rejects batches larger than 500 operations.
	viper.SetDefault("IMPORT_BATCH_SIZE", 500)

	// Bind environment variables
	viper.BindEnv("PORT")
	viper.BindEnv("GIN_MODE")
	viper.BindEnv("FIREBASE_PROJECT_ID")
	viper.BindEnv("GOOGLE_APPLICATION_CREDENTIALS")
	viper.BindEnv("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64")
	viper.BindEnv("CLIENT_URL")
	viper.BindEnv("LLM_API_URL")
	viper.BindEnv("LLM_API_KEY")
	viper.BindEnv("LLM_MODEL")
	viper.BindEnv("CONTRIBUTION_REWARD_POINTS")
	viper.BindEnv("IMPORT_BATCH_SIZE")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	// Validate required fields. Credentials may come from a file path, an
	// inline base64 blob, or Application Default Credentials on GCP, so only
	// the project ID is strictly required.
	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.ContributionRewardPoints <= 0 {
		return nil, errors.New("CONTRIBUTION_REWARD_POINTS must be positive")
	}
	if cfg.ImportBatchSize <= 0 || cfg.ImportBatchSize > 500 {
		return nil, errors.New("IMPORT_BATCH_SIZE must be between 1 and 500")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It will panic if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
