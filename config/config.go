package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	HTTPAddr     string
	ArchiveReady bool // true when the DB_* vars are set; the archive is optional in dev
	OrdersTopic  string
	SessionTTL   time.Duration
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the environment, picking up a .env file when present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		ArchiveReady: os.Getenv("DB_HOST") != "",
		OrdersTopic:  getenv("ORDERS_TOPIC", "orders"),
		SessionTTL:   7 * 24 * time.Hour,
	}
}

// MustInitPostgres opens the order archive database. The archive sees a
// handful of writes per order, so the pool stays small.
func MustInitPostgres() *sql.DB {
	connStr := "host=" + os.Getenv("DB_HOST") +
		" port=" + getenv("DB_PORT", "5432") +
		" user=" + getenv("DB_USER", "grab_atreat") +
		" password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + getenv("DB_NAME", "grab_atreat") +
		" sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("[grab-atreat] open archive database:", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatal("[grab-atreat] ping archive database:", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db
}

// MustInitRedis connects the session and loyalty cache.
func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getenv("REDIS_HOST", "localhost") + ":" + getenv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("[grab-atreat] connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{getenv("KAFKA_BROKER", "localhost:9092")},
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1e6,
	})
}

// NewKafkaWriter hashes on the message key so every update for an order
// lands on the same partition, keeping the feed's version checks in order.
func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(getenv("KAFKA_BROKER", "localhost:9092")),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
}
