package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/noble-deeds/backend/internal/config"
)

func TestLoadAPIDefaults(t *testing.T) {
	for _, key := range []string{"API_BIND_ADDR", "DEEDS_BACKEND", "API_SUGGEST_THRESHOLD", "API_SUBMIT_DELAY",
		"API_MAX_FEED_SIZE", "ELASTICSEARCH_ADDR", "ELASTICSEARCH_INDEX", "KAFKA_BROKERS", "KAFKA_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg, err := config.LoadAPI()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.BindAddr)
	require.Equal(t, config.BackendMemory, cfg.Backend)
	require.Equal(t, 20, cfg.SuggestThreshold)
	require.Zero(t, cfg.SubmitDelay)
	require.Equal(t, 500, cfg.MaxFeedSize)
	require.Equal(t, "deeds", cfg.ElasticsearchIndex)
	require.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "deeds_submitted", cfg.KafkaTopic)
}

func TestLoadAPIOverrides(t *testing.T) {
	t.Setenv("API_BIND_ADDR", ":9090")
	t.Setenv("DEEDS_BACKEND", "Elasticsearch")
	t.Setenv("API_SUGGEST_THRESHOLD", "10")
	t.Setenv("API_SUBMIT_DELAY", "2s")
	t.Setenv("API_MAX_FEED_SIZE", "50")
	t.Setenv("ELASTICSEARCH_ADDR", "http://api-es:9200")
	t.Setenv("ELASTICSEARCH_INDEX", "api-index")
	t.Setenv("KAFKA_BROKERS", "broker-a:29092, broker-b:29093")

	cfg, err := config.LoadAPI()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.BindAddr)
	require.Equal(t, config.BackendElasticsearch, cfg.Backend)
	require.Equal(t, 10, cfg.SuggestThreshold)
	require.Equal(t, 2*time.Second, cfg.SubmitDelay)
	require.Equal(t, 50, cfg.MaxFeedSize)
	require.Equal(t, "http://api-es:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "api-index", cfg.ElasticsearchIndex)
	require.Equal(t, []string{"broker-a:29092", "broker-b:29093"}, cfg.KafkaBrokers)
}

func TestLoadAPIRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown backend", key: "DEEDS_BACKEND", val: "postgres"},
		{name: "negative threshold", key: "API_SUGGEST_THRESHOLD", val: "-1"},
		{name: "negative delay", key: "API_SUBMIT_DELAY", val: "-1s"},
		{name: "zero feed size", key: "API_MAX_FEED_SIZE", val: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := config.LoadAPI()
			require.Error(t, err)
		})
	}
}

func TestLoadWorkerDefaults(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDR", "")
	t.Setenv("ELASTICSEARCH_INDEX", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("KAFKA_CONSUMER_GROUP", "")

	cfg, err := config.LoadWorker()
	require.NoError(t, err)

	require.Equal(t, "http://elasticsearch:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "deeds", cfg.ElasticsearchIndex)
	require.Len(t, cfg.KafkaBrokers, 1)
	require.Equal(t, "kafka:9092", cfg.KafkaBrokers[0])
	require.Equal(t, "deeds_submitted", cfg.KafkaTopic)
	require.Equal(t, "deeds-worker", cfg.KafkaConsumer)
	require.Equal(t, 20, cfg.SuggestThreshold)
	require.Zero(t, cfg.CommitInterval)
}

func TestLoadWorkerRejectsNegativeCommitInterval(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("WORKER_COMMIT_INTERVAL", "-1s")

	_, err := config.LoadWorker()
	require.ErrorContains(t, err, "WORKER_COMMIT_INTERVAL")
}

func TestLoadWorkerOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker-a:29092,broker-b:29093")
	t.Setenv("KAFKA_TOPIC", "custom_topic")
	t.Setenv("KAFKA_CONSUMER_GROUP", "custom-group")
	t.Setenv("WORKER_SUGGEST_THRESHOLD", "0")
	t.Setenv("WORKER_DEDUPE_CAPACITY", "5")
	t.Setenv("WORKER_DEDUPE_TTL", "48h")
	t.Setenv("WORKER_BATCH_SIZE", "3")
	t.Setenv("WORKER_COMMIT_INTERVAL", "5s")

	cfg, err := config.LoadWorker()
	require.NoError(t, err)

	require.Len(t, cfg.KafkaBrokers, 2)
	require.Equal(t, "custom_topic", cfg.KafkaTopic)
	require.Equal(t, "custom-group", cfg.KafkaConsumer)
	require.Zero(t, cfg.SuggestThreshold)
	require.Equal(t, 5, cfg.DedupeCapacity)
	require.Equal(t, 48*time.Hour, cfg.DedupeTTL)
	require.Equal(t, 3, cfg.BatchSize)
	require.Equal(t, 5*time.Second, cfg.CommitInterval)
}

func TestLoadRetention(t *testing.T) {
	t.Setenv("ELASTICSEARCH_ADDR", "http://ret-es:9200")
	t.Setenv("ELASTICSEARCH_INDEX", "ret-index")
	t.Setenv("RETENTION_CRON", "12h")
	t.Setenv("RETENTION_MAX_AGE", "36h")
	t.Setenv("RETENTION_BATCH_SIZE", "123")

	cfg, err := config.LoadRetention()
	require.NoError(t, err)

	require.Equal(t, 12*time.Hour, cfg.Interval)
	require.Equal(t, 36*time.Hour, cfg.MaxAge)
	require.Equal(t, 123, cfg.BatchSize)
	require.Equal(t, "http://ret-es:9200", cfg.ElasticsearchAddr)
	require.Equal(t, "ret-index", cfg.ElasticsearchIndex)
}
