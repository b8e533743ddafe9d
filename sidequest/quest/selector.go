package quest

import (
	"errors"
	"math/rand"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/sidequest-app/sidequest/sidequest/geo"
)

// ErrNoTemplates signals an empty catalog. The assignment service answers
// it with the hardcoded fallback quest instead of failing the request.
var ErrNoTemplates = errors.New("no quest templates available")

// Templates tagged "extended" are excluded below this preference.
const shortTimeThresholdMin = 30

// Selection weight per rarity tier. Roughly 10:3:1 keeps legendaries a
// once-in-two-weeks event for a daily quest.
func rarityWeight(rarity string) int {
	switch rarity {
	case models.RarityCommon:
		return 10
	case models.RarityRare:
		return 3
	case models.RarityLegendary:
		return 1
	default:
		return 5
	}
}

func templateWeight(t *models.QuestTemplate) int {
	declared := t.Weight
	if declared < 1 {
		declared = 1
	}
	return rarityWeight(t.Rarity) * declared
}

// FilterByPreferences applies the onboarding answers to the catalog.
// Returns the input unchanged when onboarding is incomplete or no
// preference was recorded.
func FilterByPreferences(templates []*models.QuestTemplate, prefs *models.QuestPreferences, onboardingComplete bool) []*models.QuestTemplate {
	if !onboardingComplete || prefs.Empty() {
		return templates
	}

	suitable := make([]*models.QuestTemplate, 0, len(templates))
	for _, t := range templates {
		if len(prefs.Activities) > 0 && !tagsIntersect(t.Tags, prefs.Activities) {
			continue
		}
		if prefs.IndoorPreference == models.IndoorOnly && t.RequiresPlace {
			continue
		}
		if prefs.IndoorPreference == models.OutdoorOnly && !t.RequiresPlace {
			continue
		}
		if !prefs.SpendOK() && t.HasTag(models.TagRequiresSpending) {
			continue
		}
		if prefs.MaxTimeMinutes > 0 && prefs.MaxTimeMinutes < shortTimeThresholdMin && t.HasTag(models.TagExtended) {
			continue
		}
		suitable = append(suitable, t)
	}

	return suitable
}

// FilterByWeather biases selection indoors in adverse weather: a template
// whose indoor_bias_if tags match the current conditions survives only if
// it does not require an external place. Templates without the constraint
// always pass.
func FilterByWeather(templates []*models.QuestTemplate, weather *geo.Weather) []*models.QuestTemplate {
	filtered := make([]*models.QuestTemplate, 0, len(templates))
	for _, t := range templates {
		biasTags := t.IndoorBiasIf()
		if weather != nil && len(biasTags) > 0 && anyTag(weather, biasTags) {
			if !t.RequiresPlace {
				filtered = append(filtered, t)
			}
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// Select narrows the catalog by preference and weather, then performs one
// weighted draw with the shared generator. Each stage falls back to its
// input when it would otherwise empty the pool.
func Select(templates []*models.QuestTemplate, weather *geo.Weather, prefs *models.QuestPreferences, onboardingComplete bool, rng *rand.Rand) (*models.QuestTemplate, error) {
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}

	preferred := FilterByPreferences(templates, prefs, onboardingComplete)
	if len(preferred) == 0 {
		preferred = templates
	}

	filtered := FilterByWeather(preferred, weather)
	if len(filtered) == 0 {
		filtered = preferred
	}

	weights := make([]int, len(filtered))
	for i, t := range filtered {
		weights[i] = templateWeight(t)
	}

	return filtered[WeightedIndex(rng, weights)], nil
}

// WeightedIndex performs one weighted draw and returns the chosen index.
// Pure: all state lives in the caller's generator. An all-zero weight list
// degrades to a uniform draw.
func WeightedIndex(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}

	roll := rng.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return i
		}
	}

	// Unreachable given total > 0.
	return len(weights) - 1
}

func tagsIntersect(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func anyTag(weather *geo.Weather, tags []string) bool {
	for _, tag := range tags {
		if weather.HasTag(tag) {
			return true
		}
	}
	return false
}
