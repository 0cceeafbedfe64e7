package sdg

import (
	"errors"
	"fmt"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
)

var (
	ErrUnknownGoal   = errors.New("unknown sdg")
	ErrDuplicateGoal = errors.New("duplicate sdg")
	ErrTooManyGoals  = fmt.Errorf("a deed carries at most %d sdgs", MaxTags)
)

// Resolve turns a user selection of goal ids into catalog tags, keeping the selection order.
func Resolve(ids []int) ([]models.SDGTag, error) {
	if len(ids) > MaxTags {
		return nil, ErrTooManyGoals
	}
	tags := make([]models.SDGTag, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		tag, ok := Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownGoal, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateGoal, id)
		}
		seen[id] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Normalize checks tags attached to a deed and fills a missing title or color from the catalog.
func Normalize(tags []models.SDGTag) ([]models.SDGTag, error) {
	if len(tags) > MaxTags {
		return nil, ErrTooManyGoals
	}
	out := make([]models.SDGTag, 0, len(tags))
	seen := make(map[int]struct{}, len(tags))
	for _, tag := range tags {
		ref, ok := Lookup(tag.ID)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownGoal, tag.ID)
		}
		if _, dup := seen[tag.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateGoal, tag.ID)
		}
		seen[tag.ID] = struct{}{}
		if tag.Title == "" {
			tag.Title = ref.Title
		}
		if tag.Color == "" {
			tag.Color = ref.Color
		}
		out = append(out, tag)
	}
	return out, nil
}
