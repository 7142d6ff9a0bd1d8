package scoring

import (
	"fmt"
	"math"
)

// Scorer computes per-location order values for an already filtered candidate set.
type Scorer interface {
	Score(candidates []Location, inventory []InventoryRecord) ([]ScoreEntry, error)
}

var (
	_ Scorer = SingleAttributeScorer{}
	_ Scorer = DualAttributeScorer{}
)

// NewScorer builds the scorer variant described by cfg, resolving its field references
// to attribute keys. cfg is expected to have passed Validate.
func NewScorer(cfg ScoringConfig) (Scorer, error) {
	switch cfg.Kind {
	case KindFieldValue:
		key, err := ExtractKey(cfg.TargetField)
		if err != nil {
			return nil, fmt.Errorf("target field: %w", err)
		}
		return SingleAttributeScorer{Key: key, Preference: cfg.ValuePreference}, nil
	case KindMultiFieldValue:
		key1, err := ExtractKey(cfg.TargetField1)
		if err != nil {
			return nil, fmt.Errorf("target field 1: %w", err)
		}
		key2, err := ExtractKey(cfg.TargetField2)
		if err != nil {
			return nil, fmt.Errorf("target field 2: %w", err)
		}
		return DualAttributeScorer{
			Key1: key1, Preference1: cfg.Field1Preference, Weight1: cfg.Field1Weight,
			Key2: key2, Preference2: cfg.Field2Preference, Weight2: cfg.Field2Weight,
		}, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", cfg.Kind)
	}
}

// LocationListValidator checks a location-list specification, returning "" when it is
// valid and a human-readable reason otherwise.
type LocationListValidator func(spec string) string

const msgNoLocations = "No Inventory Location(s) have been assigned to this action."

// Validate checks cfg and returns whether it may be scored along with every reason it
// may not. Checks are independent; all violations are reported.
func Validate(cfg ScoringConfig, validateLocations LocationListValidator) (bool, []string) {
	var messages []string

	if cfg.InventoryLocations == "" {
		messages = append(messages, msgNoLocations)
	} else if validateLocations != nil {
		if msg := validateLocations(cfg.InventoryLocations); msg != "" {
			messages = append(messages, msg)
		}
	}

	switch cfg.Kind {
	case KindFieldValue:
		messages = append(messages, ValidateReference(cfg.TargetField)...)
		messages = append(messages, validatePreference(cfg.ValuePreference)...)
	case KindMultiFieldValue:
		messages = append(messages, validateNumberedReference(cfg.TargetField1, "1")...)
		messages = append(messages, validatePreference(cfg.Field1Preference)...)
		messages = append(messages, validateWeight(cfg.Field1Weight, "1")...)
		messages = append(messages, validateNumberedReference(cfg.TargetField2, "2")...)
		messages = append(messages, validatePreference(cfg.Field2Preference)...)
		messages = append(messages, validateWeight(cfg.Field2Weight, "2")...)
	default:
		messages = append(messages, fmt.Sprintf("unknown rule kind %q", cfg.Kind))
	}

	return len(messages) == 0, messages
}

func validatePreference(p Preference) []string {
	if p.Valid() {
		return nil
	}
	return []string{fmt.Sprintf("unknown value preference %q", p)}
}

func validateWeight(w float64, number string) []string {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return []string{"field " + number + " weight must be a finite number"}
	}
	return nil
}
