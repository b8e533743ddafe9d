package geo

// Weather is the qualitative snapshot the selection engine filters on.
// Tags come from a fixed lookup table over the provider's weather codes,
// temperature, and wind speed.
type Weather struct {
	Temperature float64
	Condition   string
	Tags        []string
	Description string
}

// HasTag reports whether the snapshot carries the given tag.
func (w *Weather) HasTag(tag string) bool {
	for _, have := range w.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// Place is a nearby point of interest candidate.
type Place struct {
	Name       string
	Type       string
	Lat        float64
	Lon        float64
	DistanceKm float64
}
