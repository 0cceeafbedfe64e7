package elasticsearch

import (
	"time"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
)

const (
	defaultPageSize = 500
	maxPageSize     = 10000
)

func indexMapping() map[string]any {
	return map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"id":          map[string]any{"type": "keyword"},
				"description": map[string]any{"type": "text"},
				"impact":      map[string]any{"type": "integer"},
				"location":    map[string]any{"type": "text", "fields": map[string]any{"raw": map[string]any{"type": "keyword"}}},
				"date":        map[string]any{"type": "date", "format": "strict_date"},
				"sdgs": map[string]any{
					"properties": map[string]any{
						"id":    map[string]any{"type": "integer"},
						"title": map[string]any{"type": "keyword"},
						"color": map[string]any{"type": "keyword"},
					},
				},
				"contributor": map[string]any{
					"properties": map[string]any{
						"age":    map[string]any{"type": "keyword"},
						"gender": map[string]any{"type": "keyword"},
					},
				},
			},
		},
	}
}

func pageSize(n int) int {
	switch {
	case n <= 0:
		return defaultPageSize
	case n > maxPageSize:
		return maxPageSize
	default:
		return n
	}
}

func buildListBody(params ListParams, after []any) map[string]any {

	filters := make([]map[string]any, 0, 2)
	if params.SDGID != 0 {
		filters = append(filters, map[string]any{
			"term": map[string]any{"sdgs.id": params.SDGID},
		})
	}
	if params.Age != "" {
		filters = append(filters, map[string]any{
			"term": map[string]any{"contributor.age": params.Age},
		})
	}

	boolQuery := map[string]any{}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	} else {
		boolQuery["must"] = []map[string]any{
			{"match_all": map[string]any{}},
		}
	}

	body := map[string]any{
		"size": pageSize(params.PageSize),
		"query": map[string]any{
			"bool": boolQuery,
		},
		"sort": []map[string]any{
			{"date": map[string]any{"order": "desc"}},
			{"id": map[string]any{"order": "desc"}},
		},
	}
	if len(after) > 0 {
		body["search_after"] = after
	}
	return body
}

func buildRetentionBody(cutoff time.Time) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"range": map[string]any{
				"date": map[string]any{
					"lt": cutoff.UTC().Format(models.DateLayout),
				},
			},
		},
	}
}
