package config

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "config").Logger()

// LoadEnv reads a .env file when present. Real environment variables win.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", p).Msg("could not load env file")
		}
	}
}

func MustInitPostgres() *sql.DB {
	connStr := "host=" + os.Getenv("DB_HOST") + " port=" + os.Getenv("DB_PORT") +
		" user=" + os.Getenv("DB_USER") + " password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + os.Getenv("DB_NAME") + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{os.Getenv("KAFKA_BROKER")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}

// App holds the typed settings shared by the services.
type App struct {
	Port              string
	DefaultVenueID    int64
	StrictCheckout    bool
	JWTSecret         string
	QRBaseURL         string
	RateLimitRPS      float64
	RateLimitBurst    int
	IdempotencyTTL    time.Duration
	OrderEventsTopic  string
	OrderSvcURL       string
	AnalyticsSvcURL   string
	AnalyticsCacheTTL time.Duration
}

func Load() App {
	return App{
		Port:              GetEnv("PORT", "8081"),
		DefaultVenueID:    getInt64("DEFAULT_VENUE_ID", 1),
		StrictCheckout:    getBool("CHECKOUT_STRICT_ITEMS", false),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		QRBaseURL:         GetEnv("QR_BASE_URL", "http://localhost:8080"),
		RateLimitRPS:      getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:    int(getInt64("RATE_LIMIT_BURST", 40)),
		IdempotencyTTL:    getDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		OrderEventsTopic:  GetEnv("ORDER_EVENTS_TOPIC", "orders"),
		OrderSvcURL:       GetEnv("ORDER_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL:   GetEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
		AnalyticsCacheTTL: getDuration("ANALYTICS_DAILY_TTL", 7*24*time.Hour),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, def int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", raw).Msg("invalid integer, using default")
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", raw).Msg("invalid number, using default")
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", raw).Msg("invalid boolean, using default")
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
		return def
	}
	return v
}
