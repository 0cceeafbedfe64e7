package sdg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/sdg"
)

func ids(tags []models.SDGTag) []int {
	out := make([]int, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.ID)
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{name: "empty", text: "", want: []int{17}},
		{name: "whitespace", text: "   \n\t", want: []int{17}},
		{name: "no keywords", text: "Helped a neighbour move house", want: []int{17}},
		{name: "education and health", text: "We teach a health screening class", want: []int{4, 3}},
		{name: "past tense is not a keyword", text: "We taught a health screening class", want: []int{3}},
		{name: "case insensitive", text: "SOLAR panels for the SCHOOL", want: []int{4, 7}},
		{name: "one tag per rule", text: "books for the school, education and teaching", want: []int{4}},
		{name: "substring match", text: "Cooked meals for the homeless", want: []int{2}},
		{
			name: "truncated to three in rule order",
			text: "rural school food drive with solar energy and a health clinic",
			want: []int{4, 3, 2},
		},
		{
			name: "later rules dropped",
			text: "compost, solar and digital skills for underserved youth",
			want: []int{13, 7, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(sdg.Classify(tt.text)))
		})
	}
}

func TestClassifyTagsComeFromCatalog(t *testing.T) {
	inputs := []string{
		"Organized a community book drive and donated 200 books to local schools in underserved areas.",
		"Started a neighborhood composting program that reduced waste by 60%.",
		"Built a small solar charging station for mobile phones in an off-grid village.",
		"food hunger meal nutrition environment recycle climate energy electricity innovation poor",
	}

	for _, in := range inputs {
		tags := sdg.Classify(in)
		require.NotEmpty(t, tags)
		require.LessOrEqual(t, len(tags), sdg.MaxTags)

		seen := make(map[int]struct{})
		for _, tag := range tags {
			want, ok := sdg.Lookup(tag.ID)
			require.True(t, ok)
			require.Equal(t, want, tag)
			_, dup := seen[tag.ID]
			require.False(t, dup, "duplicate tag %d", tag.ID)
			seen[tag.ID] = struct{}{}
		}
	}
}

func TestSuggest(t *testing.T) {
	short := "twenty chars exactly"
	require.Len(t, short, 20)
	require.Empty(t, sdg.Suggest(short, sdg.DefaultSuggestThreshold))
	require.NotNil(t, sdg.Suggest(short, sdg.DefaultSuggestThreshold))

	require.Equal(t, []int{17}, ids(sdg.Suggest(short+"!", sdg.DefaultSuggestThreshold)))
	require.Equal(t, []int{4}, ids(sdg.Suggest("Read books with kids at the library", sdg.DefaultSuggestThreshold)))
}

func TestIsDefault(t *testing.T) {
	require.True(t, sdg.IsDefault(sdg.Classify("nothing relevant here")))
	require.False(t, sdg.IsDefault(sdg.Classify("school supplies")))
	require.False(t, sdg.IsDefault(nil))
}
