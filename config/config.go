package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Command platform integration. CommandAPIOverride reroutes every Command
	// service host to a single base URL; empty means the production hosts.
	CommandAPIOverride string `mapstructure:"COMMAND_API_OVERRIDE"`
	HTTPMaxRetries     int    `mapstructure:"HTTP_MAX_RETRIES"`
	HTTPRetryDelaySec  int    `mapstructure:"HTTP_RETRY_DELAY_SEC"`
	HTTPTimeoutSec     int    `mapstructure:"HTTP_TIMEOUT_SEC"`

	// Sync engine knobs.
	SyncWorkers       int    `mapstructure:"SYNC_WORKERS"`
	DeleteWorkers     int    `mapstructure:"DELETE_WORKERS"`
	SyncRunBudgetSec  int    `mapstructure:"SYNC_RUN_BUDGET_SEC"`
	CleanerKeepDomain string `mapstructure:"CLEANER_KEEP_DOMAIN"`

	// Firebase (FCM push notifications).
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("COMMAND_API_OVERRIDE", "")
	viper.SetDefault("HTTP_MAX_RETRIES", 10)
	viper.SetDefault("HTTP_RETRY_DELAY_SEC", 1)
	viper.SetDefault("HTTP_TIMEOUT_SEC", 30)
	viper.SetDefault("SYNC_WORKERS", 10)
	viper.SetDefault("DELETE_WORKERS", 5)
	viper.SetDefault("SYNC_RUN_BUDGET_SEC", 540)
	viper.SetDefault("CLEANER_KEEP_DOMAIN", "verkada.")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
