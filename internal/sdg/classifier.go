package sdg

import (
	"strings"
	"unicode/utf8"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
)

// MaxTags caps how many goals a single description is mapped to.
const MaxTags = 3

// DefaultSuggestThreshold is the description length a caller must exceed before suggestions are shown.
const DefaultSuggestThreshold = 20

type rule struct {
	keywords []string
	goal     int
}

// Evaluated in order; the order decides which tags survive truncation.
var rules = []rule{
	{keywords: []string{"book", "education", "teach", "school"}, goal: QualityEducation},
	{keywords: []string{"health", "medical", "doctor", "screening"}, goal: GoodHealth},
	{keywords: []string{"food", "hunger", "meal", "nutrition"}, goal: ZeroHunger},
	{keywords: []string{"environment", "compost", "recycle", "climate"}, goal: ClimateAction},
	{keywords: []string{"energy", "solar", "electricity"}, goal: CleanEnergy},
	{keywords: []string{"digital", "technology", "innovation", "infrastructure"}, goal: Innovation},
	{keywords: []string{"poor", "underserved", "inequality", "rural"}, goal: ReducedInequalities},
}

func (r rule) matches(text string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Classify maps a free-text description to at most MaxTags goals using keyword rules.
// A description that matches no rule is tagged with Partnerships for the Goals.
func Classify(description string) []models.SDGTag {
	text := strings.ToLower(description)

	tags := make([]models.SDGTag, 0, MaxTags)
	for _, r := range rules {
		if len(tags) == MaxTags {
			break
		}
		if r.matches(text) {
			tags = append(tags, mustLookup(r.goal))
		}
	}

	if len(tags) == 0 {
		tags = append(tags, mustLookup(Partnerships))
	}
	return tags
}

// Suggest returns Classify(description) once the description is longer than threshold
// characters, and an empty slice otherwise.
func Suggest(description string, threshold int) []models.SDGTag {
	if utf8.RuneCountInString(description) <= threshold {
		return []models.SDGTag{}
	}
	return Classify(description)
}

// IsDefault reports whether tags is the fallback classification.
func IsDefault(tags []models.SDGTag) bool {
	return len(tags) == 1 && tags[0].ID == Partnerships
}
