// Package analytics computes the summary statistics shown on the impact dashboard.
// Every function accepts an empty collection.
package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/sdg"
)

// SDGCount is a catalog goal with the number of deeds tagged with it.
type SDGCount struct {
	models.SDGTag
	Count int `json:"count"`
}

// Bucket is one row of a location, gender or age distribution.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Stats bundles every dashboard figure for a deed collection.
type Stats struct {
	TotalDeeds    int        `json:"total_deeds"`
	TotalImpact   int        `json:"total_impact"`
	AverageImpact int        `json:"average_impact"`
	ActiveSDGs    int        `json:"active_sdgs"`
	SDGs          []SDGCount `json:"sdgs"`
	Locations     []Bucket   `json:"locations"`
	Genders       []Bucket   `json:"genders"`
	Ages          []Bucket   `json:"ages"`
}

// TotalCount returns the number of deeds.
func TotalCount(deeds []models.Deed) int {
	return len(deeds)
}

// TotalImpact sums the impact of all deeds.
func TotalImpact(deeds []models.Deed) int {
	total := 0
	for _, d := range deeds {
		total += d.Impact
	}
	return total
}

// AverageImpact returns the rounded mean impact, or 0 for an empty collection.
func AverageImpact(deeds []models.Deed) int {
	if len(deeds) == 0 {
		return 0
	}
	return int(math.Round(float64(TotalImpact(deeds)) / float64(len(deeds))))
}

// SDGDistribution counts deeds per catalog goal. Goals without deeds are omitted; the
// result is ordered by count descending, then by goal id.
func SDGDistribution(deeds []models.Deed) []SDGCount {
	var counts [sdg.Size + 1]int
	for _, d := range deeds {
		seen := make(map[int]struct{}, len(d.SDGs))
		for _, tag := range d.SDGs {
			if _, dup := seen[tag.ID]; dup {
				continue
			}
			seen[tag.ID] = struct{}{}
			if tag.ID >= 1 && tag.ID <= sdg.Size {
				counts[tag.ID]++
			}
		}
	}

	out := make([]SDGCount, 0, sdg.Size)
	for _, tag := range sdg.Catalog() {
		if n := counts[tag.ID]; n > 0 {
			out = append(out, SDGCount{SDGTag: tag, Count: n})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// LocationDistribution counts deeds per country, taken as the text after the last comma
// of the location.
func LocationDistribution(deeds []models.Deed) []Bucket {
	return countBy(deeds, func(d models.Deed) string { return Country(d.Location) })
}

// GenderDistribution counts deeds per contributor gender.
func GenderDistribution(deeds []models.Deed) []Bucket {
	return countBy(deeds, func(d models.Deed) string { return d.Contributor.Gender })
}

// AgeDistribution counts deeds per contributor age bracket.
func AgeDistribution(deeds []models.Deed) []Bucket {
	return countBy(deeds, func(d models.Deed) string { return d.Contributor.Age })
}

// Country extracts the trimmed segment after the last comma. Locations without a usable
// segment map to themselves.
func Country(location string) string {
	idx := strings.LastIndex(location, ",")
	if idx < 0 {
		return location
	}
	if country := strings.TrimSpace(location[idx+1:]); country != "" {
		return country
	}
	return location
}

// Summarize computes every dashboard figure for deeds.
func Summarize(deeds []models.Deed) Stats {
	sdgs := SDGDistribution(deeds)
	return Stats{
		TotalDeeds:    TotalCount(deeds),
		TotalImpact:   TotalImpact(deeds),
		AverageImpact: AverageImpact(deeds),
		ActiveSDGs:    len(sdgs),
		SDGs:          sdgs,
		Locations:     LocationDistribution(deeds),
		Genders:       GenderDistribution(deeds),
		Ages:          AgeDistribution(deeds),
	}
}

// Percent is the width of a bar relative to the largest bucket, in the range 0..100.
func Percent(count, max int) float64 {
	if max <= 0 || count <= 0 {
		return 0
	}
	return float64(count) / float64(max) * 100
}

// MaxCount returns the largest count among buckets.
func MaxCount(buckets []Bucket) int {
	max := 0
	for _, b := range buckets {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// Ties keep first-seen order.
func countBy(deeds []models.Deed, key func(models.Deed) string) []Bucket {
	index := make(map[string]int)
	out := make([]Bucket, 0)
	for _, d := range deeds {
		k := key(d)
		if i, ok := index[k]; ok {
			out[i].Count++
			continue
		}
		index[k] = len(out)
		out = append(out, Bucket{Key: k, Count: 1})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
