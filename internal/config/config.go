package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	MercadoPago MercadoPagoConfig
	Dashboard   DashboardConfig
	Telegram    TelegramConfig
	Automation  AutomationConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MercadoPagoConfig struct {
	AccessToken     string
	BaseURL         string
	NotificationURL string
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	AutoReturn      string
	Currency        string
	// Placeholder identification applied when the payer omits one.
	DefaultIdentificationType   string
	DefaultIdentificationNumber string
}

type DashboardConfig struct {
	Token string
}

type TelegramConfig struct {
	BotToken    string
	AdminChatID int64 // chat that receives payment notifications
}

type AutomationConfig struct {
	WebhookURL string
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// IsProduction reports whether provider error detail must be withheld from
// responses.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	adminChat, _ := strconv.ParseInt(getEnv("TELEGRAM_ADMIN_CHAT_ID", "0"), 10, 64)

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "umbra"),
			Password: getEnv("DB_PASSWORD", "umbra"),
			Name:     getEnv("DB_NAME", "umbra"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken:                 getEnv("MP_ACCESS_TOKEN", ""),
			BaseURL:                     getEnv("MP_BASE_URL", "https://api.mercadopago.com"),
			NotificationURL:             getEnv("MP_NOTIFICATION_URL", ""),
			SuccessURL:                  getEnv("MP_BACK_URL_SUCCESS", ""),
			FailureURL:                  getEnv("MP_BACK_URL_FAILURE", ""),
			PendingURL:                  getEnv("MP_BACK_URL_PENDING", ""),
			AutoReturn:                  getEnv("MP_AUTO_RETURN", "approved"),
			Currency:                    getEnv("MP_CURRENCY", "ARS"),
			DefaultIdentificationType:   getEnv("MP_DEFAULT_IDENTIFICATION_TYPE", "DNI"),
			DefaultIdentificationNumber: getEnv("MP_DEFAULT_IDENTIFICATION_NUMBER", "00000000"),
		},
		Dashboard: DashboardConfig{
			Token: getEnv("DASHBOARD_TOKEN", ""),
		},
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			AdminChatID: adminChat,
		},
		Automation: AutomationConfig{
			WebhookURL: getEnv("AUTOMATION_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Provider call limits
const (
	ProviderCallTimeout = 15 * time.Second
	MetricsCacheTTL     = 5 * time.Minute
)
