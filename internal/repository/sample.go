package repository

import "github.com/DeafMist/noble-deeds/backend/internal/models"

// Tags on the seed deeds are stored as recorded, so a title may be shorter than the catalog's.
var sampleDeeds = []models.Deed{
	{
		ID:          "1",
		Description: "Organized a community book drive and donated 200 books to local schools in underserved areas. Children now have access to educational materials they desperately needed.",
		Impact:      150,
		Location:    "Mumbai, India",
		Date:        "2024-01-15",
		SDGs: []models.SDGTag{
			{ID: 4, Title: "Quality Education", Color: "#C5192D"},
			{ID: 10, Title: "Reduced Inequalities", Color: "#DD1367"},
		},
		Contributor: models.Contributor{Age: "25-34", Gender: "Female"},
	},
	{
		ID:          "2",
		Description: "Started a neighborhood composting program that reduced waste by 60% and created fertile soil for community gardens. Now 12 families are growing their own vegetables.",
		Impact:      12,
		Location:    "Portland, USA",
		Date:        "2024-01-12",
		SDGs: []models.SDGTag{
			{ID: 12, Title: "Responsible Consumption", Color: "#BF8B2E"},
			{ID: 13, Title: "Climate Action", Color: "#3F7E44"},
		},
		Contributor: models.Contributor{Age: "35-44", Gender: "Male"},
	},
	{
		ID:          "3",
		Description: "Taught digital literacy classes to 30 elderly residents at the local community center. They can now video call their grandchildren and access online services.",
		Impact:      30,
		Location:    "Toronto, Canada",
		Date:        "2024-01-10",
		SDGs: []models.SDGTag{
			{ID: 4, Title: "Quality Education", Color: "#C5192D"},
			{ID: 9, Title: "Innovation and Infrastructure", Color: "#FD6925"},
		},
		Contributor: models.Contributor{Age: "18-24", Gender: "Non-binary"},
	},
	{
		ID:          "4",
		Description: "Organized free health screenings in rural villages, helping detect early signs of diabetes and hypertension in 80 people who couldn't afford regular checkups.",
		Impact:      80,
		Location:    "Kerala, India",
		Date:        "2024-01-08",
		SDGs: []models.SDGTag{
			{ID: 3, Title: "Good Health and Well-being", Color: "#4C9F38"},
			{ID: 10, Title: "Reduced Inequalities", Color: "#DD1367"},
		},
		Contributor: models.Contributor{Age: "25-34", Gender: "Female"},
	},
	{
		ID:          "5",
		Description: "Built a small solar charging station for mobile phones in an off-grid village. 50 families now have access to communication and emergency services.",
		Impact:      50,
		Location:    "Nairobi, Kenya",
		Date:        "2024-01-05",
		SDGs: []models.SDGTag{
			{ID: 7, Title: "Affordable and Clean Energy", Color: "#FCC30B"},
			{ID: 9, Title: "Innovation and Infrastructure", Color: "#FD6925"},
		},
		Contributor: models.Contributor{Age: "35-44", Gender: "Male"},
	},
}

// SampleDeeds returns a deep copy of the seed deeds, newest first.
func SampleDeeds() []models.Deed {
	return cloneDeeds(sampleDeeds)
}

func cloneDeeds(in []models.Deed) []models.Deed {
	out := make([]models.Deed, len(in))
	for i, d := range in {
		out[i] = d
		out[i].SDGs = append([]models.SDGTag(nil), d.SDGs...)
	}
	return out
}
