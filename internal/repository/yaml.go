package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/sdg"
)

type dataset struct {
	Deeds []models.Deed `yaml:"deeds"`
}

// LoadYAML reads a deed dataset file of the form `deeds: [...]`.
func LoadYAML(path string) ([]models.Deed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a dataset and checks the deed invariants.
func ParseYAML(data []byte) ([]models.Deed, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	seen := make(map[string]struct{}, len(ds.Deeds))
	for i, d := range ds.Deeds {
		if d.ID == "" {
			return nil, fmt.Errorf("deed #%d: missing id", i+1)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("deed %q: %w", d.ID, ErrDuplicateID)
		}
		seen[d.ID] = struct{}{}
		if d.Impact < 1 {
			return nil, fmt.Errorf("deed %q: impact must be at least 1", d.ID)
		}
		tags, err := sdg.Normalize(d.SDGs)
		if err != nil {
			return nil, fmt.Errorf("deed %q: %w", d.ID, err)
		}
		ds.Deeds[i].SDGs = tags
	}
	return ds.Deeds, nil
}
