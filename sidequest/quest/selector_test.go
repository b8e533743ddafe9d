package quest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidequest-app/sidequest/sidequest/database/models"
	"github.com/sidequest-app/sidequest/sidequest/geo"
)

func boolPtr(b bool) *bool { return &b }

func catalogFixture() []*models.QuestTemplate {
	return []*models.QuestTemplate{
		{
			ID:            1,
			Title:         "Outdoor Photo Walk",
			Tags:          []string{"photo", "outdoor"},
			RequiresPlace: true,
			Rarity:        models.RarityCommon,
			Weight:        1,
			Constraints: map[string]interface{}{
				models.ConstraintPlaceTypes:   []interface{}{"park"},
				models.ConstraintIndoorBiasIf: []interface{}{"rain", "storm"},
			},
		},
		{
			ID:     2,
			Title:  "Indoor Sketch",
			Tags:   []string{"art"},
			Rarity: models.RarityCommon,
			Weight: 1,
		},
		{
			ID:     3,
			Title:  "Cafe Tasting",
			Tags:   []string{"food", models.TagRequiresSpending},
			Rarity: models.RarityRare,
			Weight: 1,
		},
		{
			ID:     4,
			Title:  "Marathon Scavenger Hunt",
			Tags:   []string{"outdoor", models.TagExtended},
			Rarity: models.RarityLegendary,
			Weight: 1,
		},
	}
}

func TestFilterByPreferences(t *testing.T) {
	catalog := catalogFixture()

	tests := []struct {
		name       string
		prefs      *models.QuestPreferences
		onboarding bool
		wantIDs    []int64
	}{
		{
			name:       "onboarding incomplete skips filtering",
			prefs:      &models.QuestPreferences{Activities: []string{"art"}},
			onboarding: false,
			wantIDs:    []int64{1, 2, 3, 4},
		},
		{
			name:       "empty preferences skip filtering",
			prefs:      &models.QuestPreferences{},
			onboarding: true,
			wantIDs:    []int64{1, 2, 3, 4},
		},
		{
			name:       "activity intersection",
			prefs:      &models.QuestPreferences{Activities: []string{"outdoor"}},
			onboarding: true,
			wantIDs:    []int64{1, 4},
		},
		{
			name:       "indoor only excludes place quests",
			prefs:      &models.QuestPreferences{IndoorPreference: models.IndoorOnly},
			onboarding: true,
			wantIDs:    []int64{2, 3, 4},
		},
		{
			name:       "outdoor only keeps place quests",
			prefs:      &models.QuestPreferences{IndoorPreference: models.OutdoorOnly},
			onboarding: true,
			wantIDs:    []int64{1},
		},
		{
			name:       "no spending excludes spending quests",
			prefs:      &models.QuestPreferences{WillingToSpend: boolPtr(false)},
			onboarding: true,
			wantIDs:    []int64{1, 2, 4},
		},
		{
			name:       "short time budget excludes extended quests",
			prefs:      &models.QuestPreferences{MaxTimeMinutes: 15},
			onboarding: true,
			wantIDs:    []int64{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByPreferences(catalog, tt.prefs, tt.onboarding)

			gotIDs := make([]int64, 0, len(got))
			for _, template := range got {
				gotIDs = append(gotIDs, template.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestFilterByWeather(t *testing.T) {
	catalog := catalogFixture()

	t.Run("rain drops place quests with indoor bias", func(t *testing.T) {
		rainy := &geo.Weather{Tags: []string{"rain"}}
		got := FilterByWeather(catalog, rainy)

		for _, template := range got {
			assert.NotEqual(t, int64(1), template.ID)
		}
		assert.Len(t, got, 3)
	})

	t.Run("clear weather keeps everything", func(t *testing.T) {
		sunny := &geo.Weather{Tags: []string{"sunny"}}
		got := FilterByWeather(catalog, sunny)
		assert.Len(t, got, len(catalog))
	})

	t.Run("nil weather keeps everything", func(t *testing.T) {
		got := FilterByWeather(catalog, nil)
		assert.Len(t, got, len(catalog))
	})
}

func TestSelectEmptyCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Select(nil, nil, nil, false, rng)
	assert.ErrorIs(t, err, ErrNoTemplates)
}

func TestSelectFallsBackWhenFiltersEmptyThePool(t *testing.T) {
	// Only place quests in the catalog, user wants indoor only: the
	// preference stage would empty the pool, so it is skipped.
	catalog := []*models.QuestTemplate{
		{ID: 1, RequiresPlace: true, Rarity: models.RarityCommon, Weight: 1},
	}
	prefs := &models.QuestPreferences{IndoorPreference: models.IndoorOnly}

	rng := rand.New(rand.NewSource(1))
	got, err := Select(catalog, nil, prefs, true, rng)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestSelectIsDeterministic(t *testing.T) {
	catalog := catalogFixture()

	a, err := Select(catalog, nil, nil, false, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, err := Select(catalog, nil, nil, false, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
}

func TestSelectRespectsRarityWeights(t *testing.T) {
	catalog := []*models.QuestTemplate{
		{ID: 1, Rarity: models.RarityCommon, Weight: 1},
		{ID: 2, Rarity: models.RarityRare, Weight: 1},
		{ID: 3, Rarity: models.RarityLegendary, Weight: 1},
	}

	counts := make(map[int64]int)
	for seed := int64(0); seed < 5000; seed++ {
		got, err := Select(catalog, nil, nil, false, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		counts[got.ID]++
	}

	// Weights are 10:3:1; allow generous slack around the expected shares.
	assert.Greater(t, counts[1], counts[2])
	assert.Greater(t, counts[2], counts[3])
	assert.Greater(t, counts[3], 100)
	assert.InDelta(t, 5000.0*10/14, float64(counts[1]), 300)
}

func TestTemplateWeightMultipliesDeclaredWeight(t *testing.T) {
	heavy := &models.QuestTemplate{Rarity: models.RarityCommon, Weight: 3}
	light := &models.QuestTemplate{Rarity: models.RarityCommon, Weight: 1}
	zero := &models.QuestTemplate{Rarity: models.RarityCommon, Weight: 0}

	assert.Equal(t, 30, templateWeight(heavy))
	assert.Equal(t, 10, templateWeight(light))
	assert.Equal(t, 10, templateWeight(zero))
}

func TestWeightedIndex(t *testing.T) {
	t.Run("all zero weights degrade to uniform", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		seen := make(map[int]bool)
		for i := 0; i < 200; i++ {
			idx := WeightedIndex(rng, []int{0, 0, 0})
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, 3)
			seen[idx] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("zero weight entries are never drawn", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			idx := WeightedIndex(rng, []int{0, 5, 0})
			require.Equal(t, 1, idx)
		}
	})
}
