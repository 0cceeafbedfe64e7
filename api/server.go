package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DeafMist/noble-deeds/backend/internal/analytics"
	"github.com/DeafMist/noble-deeds/backend/internal/config"
	"github.com/DeafMist/noble-deeds/backend/internal/dedupe"
	"github.com/DeafMist/noble-deeds/backend/internal/feed"
	"github.com/DeafMist/noble-deeds/backend/internal/metrics"
	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/repository"
	"github.com/DeafMist/noble-deeds/backend/internal/sdg"
	"github.com/DeafMist/noble-deeds/backend/internal/submission"
)

const maxBodyBytes = 64 << 10

type server struct {
	log       *slog.Logger
	cfg       *config.API
	store     deedStore
	submitter deedSubmitter
	health    func(ctx context.Context) error
	cache     *dedupe.Cache
	metrics   *metrics.Metrics
	now       func() time.Time
}

type errorResponse struct {
	Error string `json:"error"`
}

type classifyRequest struct {
	Description string `json:"description"`
}

type classifyResponse struct {
	Threshold int             `json:"threshold"`
	Suggested bool            `json:"suggested"`
	SDGs      []models.SDGTag `json:"sdgs"`
}

// Total and TotalImpact cover every matching deed; Items is capped at the feed size.
type feedResponse struct {
	Total       int           `json:"total"`
	TotalImpact int           `json:"total_impact"`
	Items       []models.Deed `json:"items"`
}

type submitResponse struct {
	Deed    models.Deed `json:"deed"`
	Message string      `json:"message"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/sdgs", s.handleSDGs)
	r.Post("/classify", s.handleClassify)
	r.Route("/deeds", func(r chi.Router) {
		r.Get("/", s.handleFeed)
		r.Post("/", s.handleSubmit)
		r.Get("/options", s.handleOptions)
	})
	r.Get("/analytics", s.handleAnalytics)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.health(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleSDGs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, sdg.Catalog())
}

func (s *server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	tags := sdg.Suggest(req.Description, s.cfg.SuggestThreshold)
	switch {
	case len(tags) == 0:
		s.metrics.ObserveClassification(metrics.OutcomeDeferred)
	case sdg.IsDefault(tags):
		s.metrics.ObserveClassification(metrics.OutcomeDefault)
	default:
		s.metrics.ObserveClassification(metrics.OutcomeMatched)
	}

	writeJSON(w, http.StatusOK, classifyResponse{
		Threshold: s.cfg.SuggestThreshold,
		Suggested: len(tags) > 0,
		SDGs:      tags,
	})
}

func (s *server) handleFeed(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	deeds, ok := s.listDeeds(w, r, criteria)
	if !ok {
		return
	}

	matched := feed.Filter(deeds, criteria)
	items := matched
	if len(items) > s.cfg.MaxFeedSize {
		items = items[:s.cfg.MaxFeedSize]
	}
	s.metrics.ObserveFeed(len(matched))
	writeJSON(w, http.StatusOK, feedResponse{
		Total:       len(matched),
		TotalImpact: analytics.TotalImpact(matched),
		Items:       items,
	})
}

func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	deeds, ok := s.listDeeds(w, r, feed.Criteria{})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, feed.BuildOptions(deeds))
}

func (s *server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	deeds, ok := s.listDeeds(w, r, feed.Criteria{})
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(deeds))
}

func (s *server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submission.Request
	if err := decodeJSON(w, r, &req); err != nil {
		s.metrics.ObserveSubmission(metrics.ResultInvalid, nil)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	deed, err := submission.Build(req, s.cfg.SuggestThreshold, s.now())
	if err != nil {
		s.metrics.ObserveSubmission(metrics.ResultInvalid, nil)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if s.cfg.SubmitDelay > 0 {
		select {
		case <-time.After(s.cfg.SubmitDelay):
		case <-r.Context().Done():
			s.metrics.ObserveSubmission(metrics.ResultAbandoned, nil)
			s.log.Debug("submission abandoned during delay", slog.String("id", deed.ID))
			return
		}
	}

	fingerprint := submission.Fingerprint(deed)
	if !s.cache.Claim(fingerprint) {
		s.metrics.ObserveSubmission(metrics.ResultDuplicate, nil)
		writeJSON(w, http.StatusConflict, errorResponse{Error: "this deed was already recorded today"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.submitter.SubmitDeed(ctx, deed); err != nil {
		s.cache.Forget(fingerprint)
		s.metrics.ObserveSubmission(metrics.ResultFailed, nil)
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrDuplicateID) {
			status = http.StatusConflict
		}
		s.log.Error("submit deed", slog.Any("err", err), slog.String("id", deed.ID))
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	s.metrics.ObserveSubmission(metrics.ResultAccepted, &deed)
	s.log.Info("deed recorded",
		slog.String("id", deed.ID),
		slog.Int("impact", deed.Impact),
		slog.Int("sdgs", len(deed.SDGs)),
	)
	writeJSON(w, http.StatusCreated, submitResponse{
		Deed:    deed,
		Message: submission.ConfirmationMessage(deed.Impact),
	})
}

func (s *server) listDeeds(w http.ResponseWriter, r *http.Request, c feed.Criteria) ([]models.Deed, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	deeds, err := s.store.ListDeeds(ctx, c)
	if err != nil {
		s.log.Error("list deeds", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return nil, false
	}
	return deeds, true
}

func parseCriteria(r *http.Request) (feed.Criteria, error) {
	q := r.URL.Query()
	c := feed.Criteria{
		SearchTerm: strings.TrimSpace(q.Get("q")),
		Location:   strings.TrimSpace(q.Get("location")),
		Gender:     strings.TrimSpace(q.Get("gender")),
		Age:        strings.TrimSpace(q.Get("age")),
	}

	if raw := strings.TrimSpace(q.Get("sdg")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return feed.Criteria{}, errors.New("sdg must be a number between 1 and 17")
		}
		if _, ok := sdg.Lookup(id); !ok {
			return feed.Criteria{}, errors.New("sdg must be a number between 1 and 17")
		}
		c.SDGID = id
	}
	return c, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid json body: " + err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
