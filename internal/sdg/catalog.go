package sdg

import "github.com/DeafMist/noble-deeds/backend/internal/models"

// Goal ids referenced by the classifier rules.
const (
	ZeroHunger          = 2
	GoodHealth          = 3
	QualityEducation    = 4
	CleanEnergy         = 7
	Innovation          = 9
	ReducedInequalities = 10
	ClimateAction       = 13
	Partnerships        = 17
)

var catalog = [...]models.SDGTag{
	{ID: 1, Title: "No Poverty", Color: "#E5243B"},
	{ID: 2, Title: "Zero Hunger", Color: "#DDA63A"},
	{ID: 3, Title: "Good Health and Well-being", Color: "#4C9F38"},
	{ID: 4, Title: "Quality Education", Color: "#C5192D"},
	{ID: 5, Title: "Gender Equality", Color: "#FF3A21"},
	{ID: 6, Title: "Clean Water and Sanitation", Color: "#26BDE2"},
	{ID: 7, Title: "Affordable and Clean Energy", Color: "#FCC30B"},
	{ID: 8, Title: "Decent Work and Economic Growth", Color: "#A21942"},
	{ID: 9, Title: "Industry, Innovation and Infrastructure", Color: "#FD6925"},
	{ID: 10, Title: "Reduced Inequalities", Color: "#DD1367"},
	{ID: 11, Title: "Sustainable Cities and Communities", Color: "#FD9D24"},
	{ID: 12, Title: "Responsible Consumption and Production", Color: "#BF8B2E"},
	{ID: 13, Title: "Climate Action", Color: "#3F7E44"},
	{ID: 14, Title: "Life Below Water", Color: "#0A97D9"},
	{ID: 15, Title: "Life on Land", Color: "#56C02B"},
	{ID: 16, Title: "Peace, Justice and Strong Institutions", Color: "#00689D"},
	{ID: 17, Title: "Partnerships for the Goals", Color: "#19486A"},
}

// Size is the number of goals in the catalog.
const Size = len(catalog)

// Catalog returns the goals ordered by id. The caller owns the returned slice.
func Catalog() []models.SDGTag {
	out := make([]models.SDGTag, len(catalog))
	copy(out, catalog[:])
	return out
}

// Lookup returns the goal with the given id.
func Lookup(id int) (models.SDGTag, bool) {
	if id < 1 || id > len(catalog) {
		return models.SDGTag{}, false
	}
	return catalog[id-1], true
}

func mustLookup(id int) models.SDGTag {
	tag, ok := Lookup(id)
	if !ok {
		panic("sdg: unknown goal id")
	}
	return tag
}
