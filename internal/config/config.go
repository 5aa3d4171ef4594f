package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	BookingAPI ServiceConfig
	Pricing    PricingConfig
	Features   FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	SalesTopic    string
	CatalogTopic  string
	ConsumerGroup string
}

// ServiceConfig describes one upstream HTTP service.
type ServiceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// PricingConfig carries the pricing engine's environment-level knobs.
type PricingConfig struct {
	Currency string
	// DefaultProductCommission is the product commission percentage used when
	// a staff record carries none.
	DefaultProductCommission float64
}

type FeatureFlags struct {
	EnableCatalogCaching bool
	EnableSaleEvents     bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8085),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "sharpcut"),
			Password:     getEnvString("DB_PASSWORD", "sharpcut"),
			Name:         getEnvString("DB_NAME", "sharpcut_pos"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvStringSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			SalesTopic:    getEnvString("KAFKA_SALES_TOPIC", "pos.sales"),
			CatalogTopic:  getEnvString("KAFKA_CATALOG_TOPIC", "pos.catalog"),
			ConsumerGroup: getEnvString("KAFKA_CONSUMER_GROUP", "pos-service"),
		},
		BookingAPI: ServiceConfig{
			BaseURL: getEnvString("BOOKING_API_URL", "http://localhost:8080"),
			APIKey:  getEnvString("BOOKING_API_KEY", ""),
			Timeout: time.Duration(getEnvInt("BOOKING_API_TIMEOUT", 30)) * time.Second,
		},
		Pricing: PricingConfig{
			Currency:                 getEnvString("PRICING_CURRENCY", "MYR"),
			DefaultProductCommission: getEnvFloat("PRICING_DEFAULT_PRODUCT_COMMISSION", 5.0),
		},
		Features: FeatureFlags{
			EnableCatalogCaching: getEnvBool("ENABLE_CATALOG_CACHING", true),
			EnableSaleEvents:     getEnvBool("ENABLE_SALE_EVENTS", true),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
