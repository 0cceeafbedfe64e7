package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/DeafMist/noble-deeds/backend/internal/config"
	"github.com/DeafMist/noble-deeds/backend/internal/elasticsearch"
	"github.com/DeafMist/noble-deeds/backend/internal/feed"
	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/repository"
	"github.com/DeafMist/noble-deeds/backend/internal/submission"
)

// deedStore is the read side of the feed.
type deedStore interface {
	ListDeeds(ctx context.Context, c feed.Criteria) ([]models.Deed, error)
}

// deedSubmitter accepts a new deed for storage.
type deedSubmitter interface {
	SubmitDeed(ctx context.Context, deed models.Deed) error
}

type backend struct {
	store     deedStore
	submitter deedSubmitter
	health    func(ctx context.Context) error
	close     func()
}

func openBackend(ctx context.Context, log *slog.Logger, cfg *config.API) (*backend, error) {
	switch cfg.Backend {
	case config.BackendElasticsearch:
		es, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.ElasticsearchIndex, log)
		if err != nil {
			return nil, err
		}
		initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := es.EnsureIndex(initCtx); err != nil {
			return nil, err
		}

		writer := &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
		}
		return &backend{
			store:     &esStore{es: es, pageSize: cfg.MaxFeedSize},
			submitter: &kafkaSubmitter{writer: writer},
			health:    es.Health,
			close: func() {
				if err := writer.Close(); err != nil {
					log.Warn("close kafka writer", slog.Any("err", err))
				}
			},
		}, nil
	default:
		mem := repository.NewMemory(repository.SampleDeeds())
		return &backend{
			store:     &memoryStore{mem: mem},
			submitter: &memoryStore{mem: mem},
			health:    func(context.Context) error { return nil },
			close:     func() {},
		}, nil
	}
}

type memoryStore struct {
	mem *repository.Memory
}

func (m *memoryStore) ListDeeds(ctx context.Context, _ feed.Criteria) ([]models.Deed, error) {
	return m.mem.List(ctx)
}

func (m *memoryStore) SubmitDeed(ctx context.Context, deed models.Deed) error {
	return m.mem.Add(ctx, deed)
}

// esStore pushes the exact-match criteria down to Elasticsearch and reads every matching
// deed; the handler still runs the full feed filter on the result.
type esStore struct {
	es       *elasticsearch.Client
	pageSize int
}

func (s *esStore) ListDeeds(ctx context.Context, c feed.Criteria) ([]models.Deed, error) {
	return s.es.ListDeeds(ctx, elasticsearch.ListParams{
		SDGID:    c.SDGID,
		Age:      c.Age,
		PageSize: s.pageSize,
	})
}

// kafkaSubmitter hands deeds to the worker, which indexes them.
type kafkaSubmitter struct {
	writer *kafka.Writer
}

func (k *kafkaSubmitter) SubmitDeed(ctx context.Context, deed models.Deed) error {
	msg, err := encodeDeedMessage(deed)
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish deed: %w", err)
	}
	return nil
}

func encodeDeedMessage(deed models.Deed) (kafka.Message, error) {
	payload, err := json.Marshal(deed)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal deed: %w", err)
	}
	return kafka.Message{
		Key:   []byte(deed.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "fingerprint", Value: []byte(submission.Fingerprint(deed))},
			{Key: "submitted_at", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}
