// Package submission turns a deed form into a classified Deed.
package submission

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/processing"
	"github.com/DeafMist/noble-deeds/backend/internal/sdg"
)

var (
	ErrMissingFields = errors.New("please fill in all required fields")
	ErrInvalidImpact = errors.New("impact must be a whole number of at least 1")
)

// Request is the deed form as posted by a client. Impact arrives as the raw form value.
// SDGIDs is the user's own selection; when nil the description is classified instead.
type Request struct {
	Description string    `json:"description"`
	Impact      FormValue `json:"impact"`
	Location    string    `json:"location"`
	Age         string    `json:"age"`
	Gender      string    `json:"gender"`
	SDGIDs      []int     `json:"sdg_ids,omitempty"`
}

// FormValue is a form field that clients may send as a JSON string or number.
type FormValue string

// UnmarshalJSON accepts "12", 12 and null.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number: %w", err)
	}
	*v = FormValue(n.String())
	return nil
}

// Validate checks required fields, the impact value and any explicit goal selection.
func (r Request) Validate() error {
	if processing.NormalizeDescription(r.Description) == "" ||
		strings.TrimSpace(string(r.Impact)) == "" ||
		processing.NormalizeLocation(r.Location) == "" ||
		strings.TrimSpace(r.Age) == "" ||
		strings.TrimSpace(r.Gender) == "" {
		return ErrMissingFields
	}
	if _, err := parseImpact(string(r.Impact)); err != nil {
		return err
	}
	if r.SDGIDs != nil {
		if _, err := sdg.Resolve(r.SDGIDs); err != nil {
			return err
		}
	}
	return nil
}

// Build validates the request and produces a new deed dated now (UTC).
func Build(r Request, threshold int, now time.Time) (models.Deed, error) {
	if err := r.Validate(); err != nil {
		return models.Deed{}, err
	}

	impact, _ := parseImpact(string(r.Impact))
	description := processing.NormalizeDescription(r.Description)

	var tags []models.SDGTag
	if r.SDGIDs != nil {
		tags, _ = sdg.Resolve(r.SDGIDs)
	} else {
		tags = sdg.Suggest(description, threshold)
	}

	return models.Deed{
		ID:          uuid.NewString(),
		Description: description,
		Impact:      impact,
		Location:    processing.NormalizeLocation(r.Location),
		Date:        now.UTC().Format(models.DateLayout),
		SDGs:        tags,
		Contributor: models.Contributor{
			Age:    strings.TrimSpace(r.Age),
			Gender: strings.TrimSpace(r.Gender),
		},
	}, nil
}

// Fingerprint hashes the fields that identify a repeated submission of the same deed.
func Fingerprint(d models.Deed) string {
	s := sha1.Sum([]byte(strings.ToLower(d.Description) + "|" + strings.ToLower(d.Location) + "|" + d.Date))
	return hex.EncodeToString(s[:])
}

// ConfirmationMessage is shown to the contributor once a deed is accepted.
func ConfirmationMessage(impact int) string {
	noun := "lives"
	if impact == 1 {
		noun = "life"
	}
	return fmt.Sprintf("Your noble deed impacting %d %s has been added to the global wave of goodness.", impact, noun)
}

func parseImpact(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, ErrInvalidImpact
	}
	return n, nil
}
