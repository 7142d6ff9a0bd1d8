package scoring

// FilterAvailable narrows locs to those with positive available inventory.
// When no location qualifies, the unfiltered input is returned so that stocked-out
// locations can still be ranked.
func FilterAvailable(locs []Location, records []InventoryRecord) []Location {
	out, _ := FilterAvailableWithFallback(locs, records)
	return out
}

// FilterAvailableWithFallback is FilterAvailable that also reports whether the
// fallback to the unfiltered input was taken.
func FilterAvailableWithFallback(locs []Location, records []InventoryRecord) ([]Location, bool) {
	inStock := make(map[LocationID]bool, len(records))
	for _, r := range records {
		if r.Available > 0 {
			inStock[r.LocationID] = true
		}
	}

	var available []Location
	for _, l := range locs {
		if inStock[l.ID] {
			available = append(available, l)
		}
	}
	if len(available) == 0 {
		return locs, true
	}
	return available, false
}
