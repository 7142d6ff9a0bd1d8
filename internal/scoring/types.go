package scoring

// LocationID identifies an inventory location (warehouse, store, dropship node).
type LocationID int64

// Location is a candidate sourcing location with its attribute store.
// Attribute values are string-encoded and interpreted by the scorers.
type Location struct {
	ID         LocationID        `json:"id" yaml:"id"`
	Name       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Attributes map[string]string `json:"attributes" yaml:"attributes"`
}

// HasAttribute reports whether the location's attribute store holds key.
func (l Location) HasAttribute(key string) bool {
	_, ok := l.Attributes[key]
	return ok
}

// InventoryRecord is the real-time available quantity of one item at one location.
type InventoryRecord struct {
	LocationID LocationID `json:"inventory_location_id" yaml:"location_id"`
	Available  float64    `json:"available_inventory" yaml:"available"`
}

// ScoreEntry is the scoring output for one location. Lower Order ranks first.
type ScoreEntry struct {
	LocationID LocationID `json:"location_id"`
	Order      float64    `json:"order"`
	Available  float64    `json:"available_inventory"`
}

// Preference selects whether high or low attribute values rank more favourably.
type Preference string

const (
	PreferLow  Preference = "low"
	PreferHigh Preference = "high"
)

// Valid reports whether p is a known preference. The empty value means PreferLow.
func (p Preference) Valid() bool {
	switch p {
	case "", PreferLow, PreferHigh:
		return true
	}
	return false
}

// RuleKind names the scoring variant a ScoringConfig describes.
type RuleKind string

const (
	KindFieldValue      RuleKind = "field_value"
	KindMultiFieldValue RuleKind = "multi_field_value"
)

// ScoringConfig carries everything needed to score locations for one routing rule.
// Single-field rules use TargetField/ValuePreference; multi-field rules use the numbered fields.
type ScoringConfig struct {
	Kind               RuleKind `json:"kind" yaml:"kind"`
	InventoryLocations string   `json:"inventory_locations" yaml:"inventory_locations"`

	TargetField     string     `json:"target_field,omitempty" yaml:"target_field,omitempty"`
	ValuePreference Preference `json:"value_preference,omitempty" yaml:"value_preference,omitempty"`

	TargetField1     string     `json:"target_field_1,omitempty" yaml:"target_field_1,omitempty"`
	Field1Preference Preference `json:"field_1_preference,omitempty" yaml:"field_1_preference,omitempty"`
	Field1Weight     float64    `json:"field_1_weight,omitempty" yaml:"field_1_weight,omitempty"`

	TargetField2     string     `json:"target_field_2,omitempty" yaml:"target_field_2,omitempty"`
	Field2Preference Preference `json:"field_2_preference,omitempty" yaml:"field_2_preference,omitempty"`
	Field2Weight     float64    `json:"field_2_weight,omitempty" yaml:"field_2_weight,omitempty"`
}

// inventoryIndex maps each location to its first inventory record.
func inventoryIndex(records []InventoryRecord) map[LocationID]float64 {
	idx := make(map[LocationID]float64, len(records))
	for _, r := range records {
		if _, seen := idx[r.LocationID]; !seen {
			idx[r.LocationID] = r.Available
		}
	}
	return idx
}
