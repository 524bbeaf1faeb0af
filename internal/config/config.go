package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type MySQL struct {
	User         string
	Password     string
	Host         string
	Port         string
	Database     string
	Params       string
	MaxOpenConns int
	MaxIdleConns int
}

type Mongo struct {
	URI      string
	Database string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQ struct {
	URL      string
	Exchange string
}

type Razorpay struct {
	KeyID     string
	KeySecret string
	Currency  string
}

type Retry struct {
	Attempts int
	Backoff  time.Duration
}

type Auth struct {
	JWTSecret     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
}

type Config struct {
	Port           string
	StoreDriver    string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	ShippingPrice  int64
	FreeShipping   int64

	MySQL    MySQL
	Mongo    Mongo
	Redis    Redis
	RabbitMQ RabbitMQ
	Razorpay Razorpay
	Retry    Retry
	Auth     Auth
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}
	return FromEnv()
}

// FromEnv populates a Config from environment variables with local defaults.
func FromEnv() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		StoreDriver:    getEnv("STORE_DRIVER", "mongo"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		CacheTTL:       getDuration("CACHE_TTL", time.Minute),
		ShippingPrice:  getInt64("SHIPPING_PRICE", 0),
		FreeShipping:   getInt64("FREE_SHIPPING_THRESHOLD", 0),
		MySQL: MySQL{
			User:         getEnv("MYSQL_USER", "store"),
			Password:     getEnv("MYSQL_PASSWORD", "store"),
			Host:         getEnv("MYSQL_HOST", "127.0.0.1"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Database:     getEnv("MYSQL_DATABASE", "storefront"),
			Params:       getEnv("MYSQL_PARAMS", "charset=utf8mb4&parseTime=True&loc=Local"),
			MaxOpenConns: getInt("MYSQL_MAX_OPEN_CONNS", 50),
			MaxIdleConns: getInt("MYSQL_MAX_IDLE_CONNS", 10),
		},
		Mongo: Mongo{
			URI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			Database: getEnv("MONGO_DATABASE", "storefront"),
		},
		Redis: Redis{
			Addr:     redisAddr(),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQ{
			URL:      os.Getenv("RABBITMQ_URL"),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "store.exchange"),
		},
		Razorpay: Razorpay{
			KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			Currency:  getEnv("PAYMENT_CURRENCY", "INR"),
		},
		Retry: Retry{
			Attempts: getInt("DB_CONNECT_ATTEMPTS", 3),
			Backoff:  getDuration("DB_CONNECT_BACKOFF", time.Second),
		},
		Auth: Auth{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			TokenTTL:      getDuration("JWT_TTL", 7*24*time.Hour),
			ResetTokenTTL: getDuration("RESET_TOKEN_TTL", time.Hour),
		},
	}
	return cfg
}

// redisAddr keeps the REDIS_HOST convention; an empty host disables the cache.
func redisAddr() string {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return ""
	}
	return host + ":" + getEnv("REDIS_PORT", "6379")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
