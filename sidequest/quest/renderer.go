package quest

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/sidequest-app/sidequest/sidequest/geo"
)

// Place candidates are drawn from the closest few, not the whole list, so
// the quest stays walkable.
const topPlaceCandidates = 5

// Weather-conditioned flavor text per weather family. Fixed small sets;
// one entry is picked with the shared generator.
var (
	rainModifiers    = []string{"reflections in puddles", "people with umbrellas", "rain drops on glass"}
	sunnyModifiers   = []string{"interesting shadows", "golden light", "vibrant colors"}
	snowModifiers    = []string{"snow patterns", "winter activities", "frost details"}
	defaultModifiers = []string{"interesting textures", "unique angles", "natural framing"}
)

// ResolveRadius picks the search radius for a place-backed quest: the
// user's stored radius when set, otherwise a seeded draw from the
// template's declared range.
func ResolveRadius(t *models.QuestTemplate, userRadiusKm float64, rng *rand.Rand) float64 {
	if userRadiusKm > 0 {
		return userRadiusKm
	}

	min, max, ok := t.RadiusRange()
	if !ok {
		min, max = 0.5, 2.0
	}
	return min + rng.Float64()*(max-min)
}

// GenerateContext produces the concrete context map for one quest: the
// chosen place (or a bare place-type label when no candidate was found),
// one pick per option-list constraint, a weather-flavored modifier, and
// preference-derived hints. Every pick consumes the shared generator in a
// fixed order so the whole map replays from the seed.
func GenerateContext(t *models.QuestTemplate, weather *geo.Weather, places []geo.Place, radiusKm float64, prefs *models.QuestPreferences, rng *rand.Rand) map[string]interface{} {
	context := make(map[string]interface{})

	if t.RequiresPlace && len(t.PlaceTypes()) > 0 {
		if len(places) > 0 {
			top := places
			if len(top) > topPlaceCandidates {
				top = top[:topPlaceCandidates]
			}
			selected := top[rng.Intn(len(top))]
			context["place"] = map[string]interface{}{
				"name":        selected.Name,
				"type":        selected.Type,
				"distance_km": round1(selected.DistanceKm),
			}
			context["place_type"] = selected.Type
		} else {
			placeTypes := t.PlaceTypes()
			context["place_type"] = placeTypes[rng.Intn(len(placeTypes))]
		}
		context["radius_km"] = round1(radiusKm)
	}

	// Option keys come back sorted; the draw order must be stable.
	for _, key := range t.OptionKeys() {
		options := t.Options(key)
		context[key] = options[rng.Intn(len(options))]
	}

	if weather != nil {
		context["weather"] = weather.Description

		var modifiers []string
		switch {
		case weather.HasTag("rain"):
			modifiers = rainModifiers
		case weather.HasTag("sunny"):
			modifiers = sunnyModifiers
		case weather.HasTag("snow"):
			modifiers = snowModifiers
		default:
			modifiers = defaultModifiers
		}
		context["modifier"] = modifiers[rng.Intn(len(modifiers))]
	}

	if prefs != nil {
		if prefs.MaxTimeMinutes > 0 && prefs.MaxTimeMinutes <= 15 {
			context["time_hint"] = "quick"
		} else if prefs.MaxTimeMinutes > 0 && prefs.MaxTimeMinutes <= 30 {
			context["time_hint"] = "brief"
		}
		if !prefs.SpendOK() {
			context["cost_note"] = "Focus on free activities"
		}
	}

	return context
}

// RenderBody substitutes every {key} token in the template body with its
// context value. Structured place values render as their display name.
// Tokens without a matching context key are left verbatim.
func RenderBody(body string, context map[string]interface{}) string {
	for key, value := range context {
		placeholder := "{" + key + "}"
		if !strings.Contains(body, placeholder) {
			continue
		}
		body = strings.ReplaceAll(body, placeholder, formatValue(value))
	}
	return body
}

// Difficulty scores a template 1 to 5: base 1, +1 for an external place,
// +1 rare / +2 legendary.
func Difficulty(t *models.QuestTemplate) int {
	difficulty := 1
	if t.RequiresPlace {
		difficulty++
	}
	switch t.Rarity {
	case models.RarityRare:
		difficulty++
	case models.RarityLegendary:
		difficulty += 2
	}

	if difficulty > 5 {
		difficulty = 5
	}
	return difficulty
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case map[string]interface{}:
		if name, ok := v["name"].(string); ok {
			return name
		}
		return fmt.Sprintf("%v", v)
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
