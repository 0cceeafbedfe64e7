package models

// SDGTag is one of the 17 UN Sustainable Development Goals.
type SDGTag struct {
	ID    int    `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Color string `json:"color" yaml:"color"`
}

// Contributor carries the demographics reported with a deed.
type Contributor struct {
	Age    string `json:"age" yaml:"age"`
	Gender string `json:"gender" yaml:"gender"`
}

// Deed is the canonical structure served by the feed and stored in Elasticsearch.
// SDGs are kept in classification order.
type Deed struct {
	ID          string      `json:"id" yaml:"id"`
	Description string      `json:"description" yaml:"description"`
	Impact      int         `json:"impact" yaml:"impact"`
	Location    string      `json:"location" yaml:"location"`
	Date        string      `json:"date" yaml:"date"`
	SDGs        []SDGTag    `json:"sdgs" yaml:"sdgs"`
	Contributor Contributor `json:"contributor" yaml:"contributor"`
}

// HasSDG reports whether the deed is tagged with the given goal.
func (d Deed) HasSDG(id int) bool {
	for _, tag := range d.SDGs {
		if tag.ID == id {
			return true
		}
	}
	return false
}

// DateLayout is the ISO date format used for Deed.Date.
const DateLayout = "2006-01-02"
