package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/DeafMist/noble-deeds/backend/internal/config"
	"github.com/DeafMist/noble-deeds/backend/internal/dedupe"
	"github.com/DeafMist/noble-deeds/backend/internal/elasticsearch"
	"github.com/DeafMist/noble-deeds/backend/internal/logger"
	"github.com/DeafMist/noble-deeds/backend/internal/metrics"
	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/processing"
	"github.com/DeafMist/noble-deeds/backend/internal/sdg"
	"github.com/DeafMist/noble-deeds/backend/internal/submission"
)

type deedIndexer interface {
	IndexDeed(ctx context.Context, deed models.Deed) error
}

func main() {
	log := logger.New("worker")
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
	if err != nil {
		log.Error("init elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := esClient.EnsureIndex(initCtx); err != nil {
		log.Warn("ensure index failed, continuing", slog.Any("err", err))
	}
	cancel()

	cache := dedupe.NewCache(cfg.DedupeCapacity, cfg.DedupeTTL)
	m := metrics.New("deeds_worker")

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaTopic,
		GroupID:        cfg.KafkaConsumer,
		QueueCapacity:  cfg.BatchSize,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: cfg.CommitInterval,
	})
	defer reader.Close()

	dlqWriter := &kafka.Writer{
		Addr:        kafka.TCP(cfg.KafkaBrokers...),
		Topic:       cfg.KafkaTopic + "_dlq",
		MaxAttempts: 3,
	}
	defer dlqWriter.Close()

	p := &processor{log: log, index: esClient, cache: cache, metrics: m, threshold: cfg.SuggestThreshold}

	log.Info("worker started",
		slog.String("topic", cfg.KafkaTopic),
		slog.String("group", cfg.KafkaConsumer),
		slog.String("dlq_topic", cfg.KafkaTopic+"_dlq"),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("context canceled, stopping")
				return
			}
			log.Error("fetch message", slog.Any("err", err))
			continue
		}

		if err := p.process(ctx, msg); err != nil {
			log.Warn("process message failed, sending to DLQ",
				slog.Any("err", err),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)
			if !sendToDLQ(ctx, log, dlqWriter, msg, err) {
				log.Error("DLQ write exhausted retries, leaving message uncommitted",
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
				continue
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message", slog.Any("err", err))
		}
	}
}

type processor struct {
	log       *slog.Logger
	index     deedIndexer
	cache     *dedupe.Cache
	metrics   *metrics.Metrics
	threshold int
}

// process decodes a submitted deed, restores its invariants and indexes it once.
func (p *processor) process(ctx context.Context, msg kafka.Message) error {
	deed, err := decodeDeed(msg.Value, p.threshold)
	if err != nil {
		p.metrics.ObserveIndexed(metrics.ResultInvalid)
		return err
	}

	fingerprint := submission.Fingerprint(deed)
	if p.cache.Seen(fingerprint) {
		p.metrics.ObserveIndexed(metrics.ResultDuplicate)
		p.log.Debug("duplicate deed", slog.String("id", deed.ID))
		return nil
	}

	if err := p.index.IndexDeed(ctx, deed); err != nil {
		p.metrics.ObserveIndexed(metrics.ResultFailed)
		return err
	}

	p.cache.Remember(fingerprint)
	p.metrics.ObserveIndexed(metrics.ResultAccepted)
	p.log.Info("indexed deed",
		slog.String("id", deed.ID),
		slog.String("excerpt", processing.Excerpt(deed.Description, 8)),
	)
	return nil
}

// submittedDeed tells a missing sdgs field apart from an empty selection.
type submittedDeed struct {
	models.Deed
	SDGs *[]models.SDGTag `json:"sdgs"`
}

func decodeDeed(data []byte, threshold int) (models.Deed, error) {
	var in submittedDeed
	if err := json.Unmarshal(data, &in); err != nil {
		return models.Deed{}, fmt.Errorf("decode deed: %w", err)
	}
	deed := in.Deed

	deed.Description = processing.NormalizeDescription(deed.Description)
	deed.Location = processing.NormalizeLocation(deed.Location)
	if deed.Description == "" {
		return models.Deed{}, errors.New("empty description")
	}
	if deed.Impact < 1 {
		return models.Deed{}, fmt.Errorf("impact %d is below 1", deed.Impact)
	}

	if strings.TrimSpace(deed.ID) == "" {
		deed.ID = uuid.NewString()
	}
	if _, err := time.Parse(models.DateLayout, deed.Date); err != nil {
		deed.Date = time.Now().UTC().Format(models.DateLayout)
	}

	if in.SDGs == nil {
		deed.SDGs = sdg.Suggest(deed.Description, threshold)
	} else {
		deed.SDGs = *in.SDGs
	}
	tags, err := sdg.Normalize(deed.SDGs)
	if err != nil {
		return models.Deed{}, err
	}
	deed.SDGs = tags
	return deed, nil
}

// dlqMessage copies msg with error context headers; the fetched message is left untouched.
func dlqMessage(msg kafka.Message, cause error, now time.Time) kafka.Message {
	return kafka.Message{
		Key:   msg.Key,
		Value: msg.Value,
		Headers: append(slices.Clone(msg.Headers),
			kafka.Header{Key: "original_partition", Value: []byte(fmt.Sprintf("%d", msg.Partition))},
			kafka.Header{Key: "original_offset", Value: []byte(fmt.Sprintf("%d", msg.Offset))},
			kafka.Header{Key: "error", Value: []byte(cause.Error())},
			kafka.Header{Key: "timestamp", Value: []byte(now.UTC().Format(time.RFC3339))},
		),
	}
}

// sendToDLQ forwards a failed message with error context, retrying with exponential backoff.
func sendToDLQ(ctx context.Context, log *slog.Logger, w *kafka.Writer, msg kafka.Message, cause error) bool {
	dlqMsg := dlqMessage(msg, cause, time.Now())

	for attempt := 0; attempt < 5; attempt++ {
		dlqErr := w.WriteMessages(ctx, dlqMsg)
		if dlqErr == nil {
			log.Info("message sent to DLQ",
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.Int("attempt", attempt+1),
			)
			return true
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		log.Warn("DLQ write failed, retrying",
			slog.Any("err", dlqErr),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return false
		}
	}
	return false
}
