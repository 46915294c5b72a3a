package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageBackendJSONFile = "jsonfile"
	StorageBackendPostgres = "postgres"
)

// StorageConfig - где лежат коллекции записей и истории
type StorageConfig struct {
	// Backend: "jsonfile" (по умолчанию) или "postgres"
	Backend     string
	DataDir     string // каталог для jsonfile-бэкенда
	DatabaseURL string // обязателен только для postgres-бэкенда
}

// ImagesConfig - локальное хранилище скачанных изображений
type ImagesConfig struct {
	Dir           string
	PublicBaseURL string // префикс публичных ссылок, например "http://localhost:8080"
}

// AnthropicConfig - доступ к AI-модели для извлечения и улучшения текстов
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	Enabled    bool
	URL        string
	Exchange   string
	RoutingKey string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName        string
	HTTPPort       string
	AllowedOrigins []string
	Storage        StorageConfig
	Images         ImagesConfig
	Anthropic      AnthropicConfig
	RabbitMQ       RabbitMQConfig
	FluentBit      FluentBitConfig
	StdoutLogger   StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		// .env опционален: в контейнере переменные приходят из окружения
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "property-scraper-service")
	cfg.HTTPPort = getEnvAsString("HTTP_PORT", "8080")

	origins := getEnvAsString("ALLOWED_ORIGINS", "http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	cfg.Storage.Backend = getEnvAsString("STORAGE_BACKEND", StorageBackendJSONFile)
	switch cfg.Storage.Backend {
	case StorageBackendJSONFile:
		cfg.Storage.DataDir = getEnvAsString("DATA_DIR", "./data")
	case StorageBackendPostgres:
		cfg.Storage.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.Storage.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (expected %q or %q)",
			cfg.Storage.Backend, StorageBackendJSONFile, StorageBackendPostgres)
	}

	cfg.Images.Dir = getEnvAsString("IMAGES_DIR", "./data/images")
	cfg.Images.PublicBaseURL = getEnvAsString("PUBLIC_BASE_URL", "http://localhost:"+cfg.HTTPPort)

	cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	if cfg.Anthropic.APIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
	}
	cfg.Anthropic.Model = getEnvAsString("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
		cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "property-scraper.events")
		cfg.RabbitMQ.RoutingKey = getEnvAsString("RABBITMQ_ROUTING_KEY", "properties.saved")
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию.
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
