package elasticsearch

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
)

func TestBuildListBodyMatchAll(t *testing.T) {
	body := buildListBody(ListParams{}, nil)
	require.Equal(t, defaultPageSize, body["size"])
	require.NotContains(t, body, "search_after")

	query := body["query"].(map[string]any)["bool"].(map[string]any)
	require.NotContains(t, query, "filter")
	require.Contains(t, query, "must")
}

func TestBuildListBodyFilters(t *testing.T) {
	body := buildListBody(ListParams{SDGID: 4, Age: "25-34", PageSize: 1_000_000}, nil)
	require.Equal(t, maxPageSize, body["size"])

	data, err := json.Marshal(body)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"size": 10000,
		"query": {"bool": {"filter": [
			{"term": {"sdgs.id": 4}},
			{"term": {"contributor.age": "25-34"}}
		]}},
		"sort": [
			{"date": {"order": "desc"}},
			{"id": {"order": "desc"}}
		]
	}`, string(data))
}

func TestBuildListBodySearchAfter(t *testing.T) {
	body := buildListBody(ListParams{PageSize: 2}, []any{json.Number("1704067200000"), "42"})

	data, err := json.Marshal(body)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"size": 2,
		"query": {"bool": {"must": [{"match_all": {}}]}},
		"sort": [
			{"date": {"order": "desc"}},
			{"id": {"order": "desc"}}
		],
		"search_after": [1704067200000, "42"]
	}`, string(data))
}

func TestCollectPagesReadsPastOnePage(t *testing.T) {
	const total, size = 1203, 500

	var afters [][]any
	fetch := func(_ context.Context, after []any) ([]searchHit, error) {
		afters = append(afters, after)
		start := 0
		if len(after) > 0 {
			start = after[0].(int) + 1
		}
		end := min(start+size, total)
		hits := make([]searchHit, 0, end-start)
		for i := start; i < end; i++ {
			hits = append(hits, searchHit{
				Source: models.Deed{ID: strconv.Itoa(i), Impact: 1},
				Sort:   []any{i},
			})
		}
		return hits, nil
	}

	deeds, err := collectPages(context.Background(), size, fetch)
	require.NoError(t, err)
	require.Len(t, deeds, total)
	require.Equal(t, "1202", deeds[total-1].ID)
	require.Equal(t, [][]any{nil, {499}, {999}}, afters)
}

func TestCollectPagesExactMultiple(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, after []any) ([]searchHit, error) {
		calls++
		if len(after) > 0 {
			return nil, nil
		}
		return []searchHit{
			{Source: models.Deed{ID: "b"}, Sort: []any{"b"}},
			{Source: models.Deed{ID: "a"}, Sort: []any{"a"}},
		}, nil
	}

	deeds, err := collectPages(context.Background(), 2, fetch)
	require.NoError(t, err)
	require.Len(t, deeds, 2)
	require.Equal(t, 2, calls)
}

func TestCollectPagesErrors(t *testing.T) {
	_, err := collectPages(context.Background(), 1, func(context.Context, []any) ([]searchHit, error) {
		return nil, errors.New("cluster red")
	})
	require.ErrorContains(t, err, "cluster red")

	_, err = collectPages(context.Background(), 1, func(context.Context, []any) ([]searchHit, error) {
		return []searchHit{{Source: models.Deed{ID: "x"}}}, nil
	})
	require.ErrorContains(t, err, "sort values")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = collectPages(ctx, 1, func(context.Context, []any) ([]searchHit, error) {
		t.Fatal("fetch called after cancellation")
		return nil, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildRetentionBody(t *testing.T) {
	cutoff := time.Date(2024, 3, 1, 22, 0, 0, 0, time.FixedZone("X", -5*3600))
	data, err := json.Marshal(buildRetentionBody(cutoff))
	require.NoError(t, err)
	require.JSONEq(t, `{"query": {"range": {"date": {"lt": "2024-03-02"}}}}`, string(data))
}

func TestIndexMappingTypesDate(t *testing.T) {
	props := indexMapping()["mappings"].(map[string]any)["properties"].(map[string]any)
	require.Equal(t, "date", props["date"].(map[string]any)["type"])
}
