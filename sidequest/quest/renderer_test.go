package quest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/sidequest-app/sidequest/sidequest/geo"
)

func placeTemplate() *models.QuestTemplate {
	return &models.QuestTemplate{
		ID:            1,
		Title:         "Urban Explorer",
		BodyTemplate:  "Visit {place} and photograph the {subject}.",
		RequiresPlace: true,
		Rarity:        models.RarityRare,
		Weight:        1,
		Constraints: map[string]interface{}{
			models.ConstraintPlaceTypes:  []interface{}{"park", "cafe"},
			models.ConstraintRadiusRange: []interface{}{0.5, 2.0},
			"subject":                    []interface{}{"entrance", "signage", "seating"},
		},
	}
}

func TestResolveRadius(t *testing.T) {
	template := placeTemplate()

	t.Run("user radius wins", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		got := ResolveRadius(template, 3.5, rng)
		assert.Equal(t, 3.5, got)
	})

	t.Run("unset radius draws from template range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		got := ResolveRadius(template, 0, rng)
		assert.GreaterOrEqual(t, got, 0.5)
		assert.LessOrEqual(t, got, 2.0)
	})

	t.Run("no declared range falls back to defaults", func(t *testing.T) {
		bare := &models.QuestTemplate{}
		rng := rand.New(rand.NewSource(1))
		got := ResolveRadius(bare, 0, rng)
		assert.GreaterOrEqual(t, got, 0.5)
		assert.LessOrEqual(t, got, 2.0)
	})
}

func TestGenerateContextWithPlaces(t *testing.T) {
	template := placeTemplate()
	places := []geo.Place{
		{Name: "Stanley Park", Type: "park", DistanceKm: 0.42},
		{Name: "Cafe Medina", Type: "cafe", DistanceKm: 0.88},
	}
	weather := &geo.Weather{
		Temperature: 18,
		Condition:   "Light rain",
		Tags:        []string{"rain", "mild"},
		Description: "Light rain, 18°C",
	}

	rng := rand.New(rand.NewSource(3))
	context := GenerateContext(template, weather, places, 1.5, nil, rng)

	place, ok := context["place"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, []string{"Stanley Park", "Cafe Medina"}, place["name"])
	assert.Equal(t, 1.5, context["radius_km"])
	assert.Contains(t, []string{"entrance", "signage", "seating"}, context["subject"])
	assert.Equal(t, "Light rain, 18°C", context["weather"])
	assert.Contains(t, rainModifiers, context["modifier"])
}

func TestGenerateContextNoPlacesFallsBackToLabel(t *testing.T) {
	template := placeTemplate()
	rng := rand.New(rand.NewSource(3))

	context := GenerateContext(template, nil, nil, 1.0, nil, rng)

	_, hasPlace := context["place"]
	assert.False(t, hasPlace)
	assert.Contains(t, []string{"park", "cafe"}, context["place_type"])
	assert.Equal(t, 1.0, context["radius_km"])
}

func TestGenerateContextIsDeterministic(t *testing.T) {
	template := placeTemplate()
	places := []geo.Place{
		{Name: "A", Type: "park", DistanceKm: 0.1},
		{Name: "B", Type: "park", DistanceKm: 0.2},
		{Name: "C", Type: "cafe", DistanceKm: 0.3},
	}
	weather := &geo.Weather{Tags: []string{"sunny"}, Description: "Clear sky, 22°C"}

	a := GenerateContext(template, weather, places, 1.0, nil, rand.New(rand.NewSource(42)))
	b := GenerateContext(template, weather, places, 1.0, nil, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestGenerateContextPicksFromClosestFive(t *testing.T) {
	template := placeTemplate()
	places := make([]geo.Place, 0, 10)
	for i := 0; i < 10; i++ {
		places = append(places, geo.Place{
			Name:       string(rune('A' + i)),
			Type:       "park",
			DistanceKm: float64(i),
		})
	}

	for seed := int64(0); seed < 100; seed++ {
		context := GenerateContext(template, nil, places, 1.0, nil, rand.New(rand.NewSource(seed)))
		place := context["place"].(map[string]interface{})
		assert.Contains(t, []string{"A", "B", "C", "D", "E"}, place["name"])
	}
}

func TestGenerateContextPreferenceHints(t *testing.T) {
	template := &models.QuestTemplate{}

	tests := []struct {
		name         string
		prefs        *models.QuestPreferences
		wantTimeHint interface{}
		wantCostNote interface{}
	}{
		{
			name:         "quick time budget",
			prefs:        &models.QuestPreferences{MaxTimeMinutes: 15},
			wantTimeHint: "quick",
		},
		{
			name:         "brief time budget",
			prefs:        &models.QuestPreferences{MaxTimeMinutes: 30},
			wantTimeHint: "brief",
		},
		{
			name:  "no time budget",
			prefs: &models.QuestPreferences{MaxTimeMinutes: 90},
		},
		{
			name:         "no spending",
			prefs:        &models.QuestPreferences{WillingToSpend: boolPtr(false)},
			wantCostNote: "Focus on free activities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			context := GenerateContext(template, nil, nil, 1.0, tt.prefs, rng)
			assert.Equal(t, tt.wantTimeHint, context["time_hint"])
			assert.Equal(t, tt.wantCostNote, context["cost_note"])
		})
	}
}

func TestRenderBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		context map[string]interface{}
		want    string
	}{
		{
			name: "simple substitution",
			body: "Find a {place_type} within {radius_km} km",
			context: map[string]interface{}{
				"place_type": "park",
				"radius_km":  1.5,
			},
			want: "Find a park within 1.5 km",
		},
		{
			name: "place map renders its name",
			body: "Visit {place} today",
			context: map[string]interface{}{
				"place": map[string]interface{}{"name": "Stanley Park", "type": "park"},
			},
			want: "Visit Stanley Park today",
		},
		{
			name:    "unmatched token left verbatim",
			body:    "Photograph the {subject}",
			context: map[string]interface{}{},
			want:    "Photograph the {subject}",
		},
		{
			name: "integral float renders without decimals",
			body: "within {radius_km} km",
			context: map[string]interface{}{
				"radius_km": 2.0,
			},
			want: "within 2 km",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderBody(tt.body, tt.context))
		})
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		template *models.QuestTemplate
		want     int
	}{
		{
			name:     "common without place",
			template: &models.QuestTemplate{Rarity: models.RarityCommon},
			want:     1,
		},
		{
			name:     "common with place",
			template: &models.QuestTemplate{Rarity: models.RarityCommon, RequiresPlace: true},
			want:     2,
		},
		{
			name:     "rare with place",
			template: &models.QuestTemplate{Rarity: models.RarityRare, RequiresPlace: true},
			want:     3,
		},
		{
			name:     "legendary with place",
			template: &models.QuestTemplate{Rarity: models.RarityLegendary, RequiresPlace: true},
			want:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Difficulty(tt.template))
		})
	}
}
