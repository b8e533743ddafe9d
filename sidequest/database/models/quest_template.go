package models

import (
	"sort"
	"time"

	"github.com/uptrace/bun"
)

type QuestTemplate struct {
	bun.BaseModel `bun:"table:quest_templates,alias:qt"`

	ID           int64                  `bun:"id,pk,autoincrement"`
	Title        string                 `bun:"title,notnull"`
	BodyTemplate string                 `bun:"body_template,notnull"`
	Tags         []string               `bun:"tags,type:jsonb"`
	Constraints  map[string]interface{} `bun:"constraints,type:jsonb"`

	RequiresPlace bool   `bun:"requires_place,notnull,default:false"`
	Rarity        string `bun:"rarity,notnull,default:'common'"`
	Weight        int    `bun:"weight,notnull,default:1"`
	Enabled       bool   `bun:"enabled,notnull,default:true"`

	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Rarity tiers. Selection weight and difficulty both key off these.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

// Tags with selector-visible meaning.
const (
	TagRequiresSpending = "requires_spending"
	TagExtended         = "extended"
)

// Reserved constraint keys. Every other key whose value is a list of
// options gets one seeded pick during context generation.
const (
	ConstraintPlaceTypes   = "place_types"
	ConstraintRadiusRange  = "radius_km_range"
	ConstraintIndoorBiasIf = "indoor_bias_if"
)

// HasTag reports whether the template carries the given tag.
func (t *QuestTemplate) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}

// PlaceTypes returns the declared place types, if any.
func (t *QuestTemplate) PlaceTypes() []string {
	return stringList(t.Constraints[ConstraintPlaceTypes])
}

// IndoorBiasIf returns the weather tags that bias selection indoors.
func (t *QuestTemplate) IndoorBiasIf() []string {
	return stringList(t.Constraints[ConstraintIndoorBiasIf])
}

// RadiusRange returns the declared [min,max] search radius in km.
func (t *QuestTemplate) RadiusRange() (min, max float64, ok bool) {
	raw, isList := t.Constraints[ConstraintRadiusRange].([]interface{})
	if !isList || len(raw) != 2 {
		return 0, 0, false
	}
	min, okMin := toFloat(raw[0])
	max, okMax := toFloat(raw[1])
	if !okMin || !okMax {
		return 0, 0, false
	}
	return min, max, true
}

// OptionKeys returns the non-reserved constraint keys whose values are
// option lists, sorted so the seeded draw order is stable across runs.
func (t *QuestTemplate) OptionKeys() []string {
	keys := make([]string, 0, len(t.Constraints))
	for key, value := range t.Constraints {
		switch key {
		case ConstraintPlaceTypes, ConstraintRadiusRange, ConstraintIndoorBiasIf:
			continue
		}
		if len(stringList(value)) > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Options returns the option list stored under key, empty when absent.
func (t *QuestTemplate) Options(key string) []string {
	return stringList(t.Constraints[key])
}

func stringList(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
