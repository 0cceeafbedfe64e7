// Package feed narrows a deed collection to what the inspiration feed shows.
package feed

import (
	"strings"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
)

// Criteria holds the user-selected feed filters. The zero value matches every deed.
type Criteria struct {
	SearchTerm string `json:"search_term,omitempty"`
	SDGID      int    `json:"sdg_id,omitempty"`
	Location   string `json:"location,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Age        string `json:"age,omitempty"`
}

// IsZero reports whether no filter is set.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Options lists the distinct values the location, gender and age filters can take.
type Options struct {
	Locations []string `json:"locations"`
	Genders   []string `json:"genders"`
	Ages      []string `json:"ages"`
}

// Filter returns the deeds matching every criterion, preserving their relative order.
func Filter(deeds []models.Deed, c Criteria) []models.Deed {
	term := strings.ToLower(c.SearchTerm)
	location := strings.ToLower(c.Location)

	out := make([]models.Deed, 0, len(deeds))
	for _, d := range deeds {
		if term != "" &&
			!strings.Contains(strings.ToLower(d.Description), term) &&
			!strings.Contains(strings.ToLower(d.Location), term) {
			continue
		}
		if c.SDGID != 0 && !d.HasSDG(c.SDGID) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(d.Location), location) {
			continue
		}
		if c.Gender != "" && !strings.EqualFold(d.Contributor.Gender, c.Gender) {
			continue
		}
		if c.Age != "" && d.Contributor.Age != c.Age {
			continue
		}
		out = append(out, d)
	}
	return out
}

// BuildOptions collects the distinct filter values in first-seen order.
func BuildOptions(deeds []models.Deed) Options {
	return Options{
		Locations: distinct(deeds, func(d models.Deed) string { return d.Location }),
		Genders:   distinct(deeds, func(d models.Deed) string { return d.Contributor.Gender }),
		Ages:      distinct(deeds, func(d models.Deed) string { return d.Contributor.Age }),
	}
}

func distinct(deeds []models.Deed, field func(models.Deed) string) []string {
	seen := make(map[string]struct{}, len(deeds))
	out := make([]string, 0, len(deeds))
	for _, d := range deeds {
		v := field(d)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
