package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTokenDB  int    `mapstructure:"REDIS_TOKEN_DB"`

	// Google Calendar OAuth configuration.
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `mapstructure:"GOOGLE_REDIRECT_URI"`
	GoogleCalendarID   string `mapstructure:"GOOGLE_CALENDAR_ID"`
	BookingTimezone    string `mapstructure:"BOOKING_TIMEZONE"`

	// Retell voice platform configuration.
	RetellAPIKey      string `mapstructure:"RETELL_API_KEY"`
	RetellAgentID     string `mapstructure:"RETELL_AGENT_ID"`
	RetellPhoneNumber string `mapstructure:"RETELL_PHONE_NUMBER"`
	RetellLLMID       string `mapstructure:"RETELL_LLM_ID"`
	WebhookURL        string `mapstructure:"WEBHOOK_URL"`

	// Company identity used in the agent prompt.
	CompanyName  string `mapstructure:"COMPANY_NAME"`
	CompanyPhone string `mapstructure:"COMPANY_PHONE"`
	ServiceArea  string `mapstructure:"SERVICE_AREA"`
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
	viper.SetDefault("REDIS_TOKEN_DB", 1)
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	viper.SetDefault("BOOKING_TIMEZONE", "America/New_York")
	viper.SetDefault("COMPANY_NAME", "ABC Plumbing Services")
	viper.SetDefault("COMPANY_PHONE", "(555) 123-4567")
	viper.SetDefault("SERVICE_AREA", "the greater metro area")

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
