package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported deed backends for the API.
const (
	BackendMemory        = "memory"
	BackendElasticsearch = "elasticsearch"
)

// Common contains Elasticsearch parameters shared by every service.
type Common struct {
	ElasticsearchAddr  string
	ElasticsearchIndex string
}

// Kafka names the topic submitted deeds travel through.
type Kafka struct {
	KafkaBrokers []string
	KafkaTopic   string
}

// API describes HTTP-layer configuration.
type API struct {
	Common
	Kafka
	BindAddr         string
	Backend          string
	SuggestThreshold int
	SubmitDelay      time.Duration
	MaxFeedSize      int
	DedupeCapacity   int
	DedupeTTL        time.Duration
}

// Worker holds configuration for the Kafka -> Elasticsearch deed indexer.
type Worker struct {
	Common
	Kafka
	KafkaConsumer    string
	SuggestThreshold int
	DedupeCapacity   int
	DedupeTTL        time.Duration
	BatchSize        int
	// CommitInterval of zero commits each offset synchronously after indexing.
	CommitInterval time.Duration
}

// Retention configures the cleanup loop.
type Retention struct {
	Common
	Interval  time.Duration
	MaxAge    time.Duration
	BatchSize int
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	c := &API{
		Common:           loadCommon(),
		Kafka:            loadKafka(),
		BindAddr:         getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		Backend:          strings.ToLower(getEnv("DEEDS_BACKEND", BackendMemory)),
		SuggestThreshold: getInt("API_SUGGEST_THRESHOLD", 20),
		SubmitDelay:      getDuration("API_SUBMIT_DELAY", "0s"),
		MaxFeedSize:      getInt("API_MAX_FEED_SIZE", 500),
		DedupeCapacity:   getInt("API_DEDUPE_CAPACITY", 10000),
		DedupeTTL:        getDuration("API_DEDUPE_TTL", "24h"),
	}

	switch c.Backend {
	case BackendMemory:
	case BackendElasticsearch:
		if len(c.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
		}
	default:
		return nil, fmt.Errorf("DEEDS_BACKEND must be %q or %q", BackendMemory, BackendElasticsearch)
	}

	if c.SuggestThreshold < 0 {
		return nil, fmt.Errorf("API_SUGGEST_THRESHOLD cannot be negative")
	}
	if c.SubmitDelay < 0 {
		return nil, fmt.Errorf("API_SUBMIT_DELAY cannot be negative")
	}
	if c.MaxFeedSize <= 0 {
		return nil, fmt.Errorf("API_MAX_FEED_SIZE must be positive")
	}
	if c.DedupeCapacity <= 0 {
		return nil, fmt.Errorf("API_DEDUPE_CAPACITY must be positive")
	}

	return c, nil
}

// LoadWorker builds a Worker config from environment variables.
func LoadWorker() (*Worker, error) {
	c := &Worker{
		Common:           loadCommon(),
		Kafka:            loadKafka(),
		KafkaConsumer:    getEnv("KAFKA_CONSUMER_GROUP", "deeds-worker"),
		SuggestThreshold: getInt("WORKER_SUGGEST_THRESHOLD", 20),
		DedupeCapacity:   getInt("WORKER_DEDUPE_CAPACITY", 20000),
		DedupeTTL:        getDuration("WORKER_DEDUPE_TTL", "24h"),
		BatchSize:        getInt("WORKER_BATCH_SIZE", 10),
		CommitInterval:   getDuration("WORKER_COMMIT_INTERVAL", "0s"),
	}

	if len(c.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("WORKER_BATCH_SIZE must be positive")
	}
	if c.DedupeCapacity <= 0 {
		return nil, fmt.Errorf("WORKER_DEDUPE_CAPACITY must be positive")
	}
	if c.SuggestThreshold < 0 {
		return nil, fmt.Errorf("WORKER_SUGGEST_THRESHOLD cannot be negative")
	}
	if c.CommitInterval < 0 {
		return nil, fmt.Errorf("WORKER_COMMIT_INTERVAL cannot be negative")
	}

	return c, nil
}

// LoadRetention builds a Retention config from environment variables.
func LoadRetention() (*Retention, error) {
	c := &Retention{
		Common:    loadCommon(),
		Interval:  getDuration("RETENTION_CRON", "24h"),
		MaxAge:    getDuration("RETENTION_MAX_AGE", "8760h"),
		BatchSize: getInt("RETENTION_BATCH_SIZE", 500),
	}

	if c.MaxAge <= 0 {
		return nil, fmt.Errorf("RETENTION_MAX_AGE must be positive")
	}
	if c.Interval <= 0 {
		return nil, fmt.Errorf("RETENTION_CRON must be positive")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("RETENTION_BATCH_SIZE must be positive")
	}

	return c, nil
}

func loadCommon() Common {
	return Common{
		ElasticsearchAddr:  getEnv("ELASTICSEARCH_ADDR", "http://elasticsearch:9200"),
		ElasticsearchIndex: getEnv("ELASTICSEARCH_INDEX", "deeds"),
	}
}

func loadKafka() Kafka {
	return Kafka{
		KafkaBrokers: splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "deeds_submitted"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
