package feed_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/noble-deeds/backend/internal/feed"
	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/repository"
)

func deedIDs(deeds []models.Deed) []string {
	out := make([]string, 0, len(deeds))
	for _, d := range deeds {
		out = append(out, d.ID)
	}
	return out
}

func TestFilterZeroCriteriaIsIdentity(t *testing.T) {
	deeds := repository.SampleDeeds()
	require.True(t, feed.Criteria{}.IsZero())
	require.Equal(t, deeds, feed.Filter(deeds, feed.Criteria{}))
	require.Empty(t, feed.Filter(nil, feed.Criteria{}))
}

func TestFilter(t *testing.T) {
	deeds := repository.SampleDeeds()

	tests := []struct {
		name     string
		criteria feed.Criteria
		want     []string
	}{
		{name: "sdg 4", criteria: feed.Criteria{SDGID: 4}, want: []string{"1", "3"}},
		{name: "sdg 10", criteria: feed.Criteria{SDGID: 10}, want: []string{"1", "4"}},
		{name: "sdg without deeds", criteria: feed.Criteria{SDGID: 16}, want: []string{}},
		{name: "search description", criteria: feed.Criteria{SearchTerm: "SOLAR"}, want: []string{"5"}},
		{name: "search location", criteria: feed.Criteria{SearchTerm: "india"}, want: []string{"1", "4"}},
		{name: "search matches both fields", criteria: feed.Criteria{SearchTerm: "community"}, want: []string{"1", "2", "3"}},
		{name: "location substring", criteria: feed.Criteria{Location: "kerala"}, want: []string{"4"}},
		{name: "full location", criteria: feed.Criteria{Location: "Portland, USA"}, want: []string{"2"}},
		{name: "gender case insensitive", criteria: feed.Criteria{Gender: "female"}, want: []string{"1", "4"}},
		{name: "gender is exact", criteria: feed.Criteria{Gender: "Fem"}, want: []string{}},
		{name: "age exact", criteria: feed.Criteria{Age: "35-44"}, want: []string{"2", "5"}},
		{name: "age is case sensitive", criteria: feed.Criteria{Age: "35-4"}, want: []string{}},
		{
			name:     "conjunction",
			criteria: feed.Criteria{SearchTerm: "organized", SDGID: 10, Gender: "Female", Age: "25-34", Location: "India"},
			want:     []string{"1", "4"},
		},
		{name: "conjunction narrows", criteria: feed.Criteria{SDGID: 9, Gender: "Male"}, want: []string{"5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, deedIDs(feed.Filter(deeds, tt.criteria)))
		})
	}
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	deeds := repository.SampleDeeds()
	reversed := make([]models.Deed, len(deeds))
	for i, d := range deeds {
		reversed[len(deeds)-1-i] = d
	}

	require.Equal(t, []string{"3", "1"}, deedIDs(feed.Filter(reversed, feed.Criteria{SDGID: 4})))
	require.Equal(t, []string{"5", "4", "3", "2", "1"}, deedIDs(reversed))
}

func TestBuildOptions(t *testing.T) {
	opts := feed.BuildOptions(repository.SampleDeeds())
	require.Equal(t, []string{"Mumbai, India", "Portland, USA", "Toronto, Canada", "Kerala, India", "Nairobi, Kenya"}, opts.Locations)
	require.Equal(t, []string{"Female", "Male", "Non-binary"}, opts.Genders)
	require.Equal(t, []string{"25-34", "35-44", "18-24"}, opts.Ages)

	empty := feed.BuildOptions(nil)
	require.Empty(t, empty.Locations)
	require.NotNil(t, empty.Genders)
}
